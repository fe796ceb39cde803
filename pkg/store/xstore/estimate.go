package xstore

import "reflect"

// 内存估算器：对任意值做递归的、尽力而为的尺寸估算。
// 只认识一组封闭的"可度量"种类（标量、字符串、序列、映射、结构体），
// 不尝试通用反射度量；自定义类型通过实现 Sizer 给出精确值。

const (
	// entryOverheadBytes 每个条目的固定开销估算：
	// 链表节点、map 桶槽位和 entry 结构本身。
	entryOverheadBytes = 96

	// stringHeaderBytes 字符串头开销。
	stringHeaderBytes = 16

	// sliceHeaderBytes 切片头开销。
	sliceHeaderBytes = 24

	// mapOverheadBytes 映射的固定开销估算。
	mapOverheadBytes = 48

	// wordBytes 指针/接口等一个机器字的估算。
	wordBytes = 8

	// maxEstimateDepth 递归深度上限，防止深层嵌套或循环引用导致失控。
	maxEstimateDepth = 8
)

// Sizer 允许自定义值类型报告自身的内存占用（字节）。
// 实现此接口的值在估算时直接采用 SizeBytes 的返回值，不再递归展开。
type Sizer interface {
	SizeBytes() int
}

// estimateSize 估算单个值的内存占用（字节）。
func estimateSize(v any) int {
	if v == nil {
		return 0
	}
	if sz, ok := v.(Sizer); ok {
		return sz.SizeBytes()
	}
	return estimateValue(reflect.ValueOf(v), 0)
}

// estimateValue 按种类递归估算。未知种类退化为类型自身的静态尺寸。
func estimateValue(rv reflect.Value, depth int) int {
	if !rv.IsValid() {
		return 0
	}
	if depth >= maxEstimateDepth {
		return wordBytes
	}

	switch rv.Kind() {
	case reflect.String:
		return stringHeaderBytes + rv.Len()

	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return int(rv.Type().Size())

	case reflect.Slice:
		if rv.IsNil() {
			return sliceHeaderBytes
		}
		// 字节切片走快路径，其他元素逐个递归。
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return sliceHeaderBytes + rv.Len()
		}
		total := sliceHeaderBytes
		for i := 0; i < rv.Len(); i++ {
			total += estimateValue(rv.Index(i), depth+1)
		}
		return total

	case reflect.Array:
		total := 0
		for i := 0; i < rv.Len(); i++ {
			total += estimateValue(rv.Index(i), depth+1)
		}
		return total

	case reflect.Map:
		if rv.IsNil() {
			return wordBytes
		}
		total := mapOverheadBytes
		iter := rv.MapRange()
		for iter.Next() {
			total += estimateValue(iter.Key(), depth+1)
			total += estimateValue(iter.Value(), depth+1)
		}
		return total

	case reflect.Struct:
		total := 0
		for i := 0; i < rv.NumField(); i++ {
			total += estimateValue(rv.Field(i), depth+1)
		}
		return total

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return wordBytes
		}
		return wordBytes + estimateValue(rv.Elem(), depth+1)

	default:
		// Chan/Func/UnsafePointer 等不可度量种类，只按一个字计。
		return wordBytes
	}
}
