package construct

// Friendly aliases over the primitive table, grounded on
// original_source/construct/lib's Int8ub/Byte/Short/... naming so the
// scenarios in spec.md 8 (which reference Int8ub and Byte directly) and
// existing construct definitions translate one-to-one.
var (
	Int8ub  = Int(1, false, BigEndian)
	Int8sb  = Int(1, true, BigEndian)
	Int16ub = Int(2, false, BigEndian)
	Int16sb = Int(2, true, BigEndian)
	Int24ub = Int(3, false, BigEndian)
	Int24sb = Int(3, true, BigEndian)
	Int32ub = Int(4, false, BigEndian)
	Int32sb = Int(4, true, BigEndian)
	Int64ub = Int(8, false, BigEndian)
	Int64sb = Int(8, true, BigEndian)

	Int8ul  = Int(1, false, LittleEndian)
	Int8sl  = Int(1, true, LittleEndian)
	Int16ul = Int(2, false, LittleEndian)
	Int16sl = Int(2, true, LittleEndian)
	Int24ul = Int(3, false, LittleEndian)
	Int24sl = Int(3, true, LittleEndian)
	Int32ul = Int(4, false, LittleEndian)
	Int32sl = Int(4, true, LittleEndian)
	Int64ul = Int(8, false, LittleEndian)
	Int64sl = Int(8, true, LittleEndian)

	Int8un  = Int(1, false, NativeEndian)
	Int8sn  = Int(1, true, NativeEndian)
	Int16un = Int(2, false, NativeEndian)
	Int16sn = Int(2, true, NativeEndian)
	Int32un = Int(4, false, NativeEndian)
	Int32sn = Int(4, true, NativeEndian)
	Int64un = Int(8, false, NativeEndian)
	Int64sn = Int(8, true, NativeEndian)

	// Byte is the single most common primitive: an unsigned 8-bit
	// integer, endianness being moot at one byte.
	Byte  = Int8ub
	Short = Int16ub
	Long  = Int32ub

	Float16b = Float(2, BigEndian)
	Float16l = Float(2, LittleEndian)
	Float32b = Float(4, BigEndian)
	Float32l = Float(4, LittleEndian)
	Float64b = Float(8, BigEndian)
	Float64l = Float(8, LittleEndian)
)
