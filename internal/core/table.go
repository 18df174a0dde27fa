package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ColumnType 列的标量类型
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt64
	TypeInt32
	TypeFloat64
	TypeFloat32
	TypeTimestamp
)

// String 获取列类型名称
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInt64:
		return "int64"
	case TypeInt32:
		return "int32"
	case TypeFloat64:
		return "float64"
	case TypeFloat32:
		return "float32"
	case TypeTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Column 一列数据：列名、标量类型和同构的值序列
type Column struct {
	Name   string
	Type   ColumnType
	Values []any
}

// Table 内存中的表格数据：有序的命名列，各列行数一致。
// Table 是值不是实体，由 Reader 产生、由 Writer 消费。
type Table struct {
	Columns []Column
}

// NewTable 创建空表
func NewTable() *Table {
	return &Table{}
}

// AddColumn 追加一列，列的行数必须与已有列一致
func (t *Table) AddColumn(name string, typ ColumnType, values []any) error {
	if len(t.Columns) > 0 && len(values) != t.RowCount() {
		return fmt.Errorf("列 %s 的行数不一致: 期望 %d, 实际 %d", name, t.RowCount(), len(values))
	}
	for _, col := range t.Columns {
		if col.Name == name {
			return fmt.Errorf("列名重复: %s", name)
		}
	}
	t.Columns = append(t.Columns, Column{Name: name, Type: typ, Values: values})
	return nil
}

// ColumnNames 按顺序获取所有列名
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// RowCount 获取行数
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Row 按列顺序取出第 i 行的值
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, col := range t.Columns {
		row[j] = col.Values[i]
	}
	return row
}

// Column 按列名查找，找不到时返回 nil
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// timestampLayouts 识别时间戳字符串时尝试的格式
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp 按支持的格式解析时间戳字符串
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// InferString 推断字符串值的标量类型，返回转换后的值。
// 依次尝试 int64、float64、时间戳，都失败时按文本处理。
func InferString(s string) (any, ColumnType) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, TypeInt64
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, TypeFloat64
	}
	if ts, ok := ParseTimestamp(s); ok {
		return ts, TypeTimestamp
	}
	return s, TypeText
}

// InferValue 推断任意解码值的标量类型。
// json.Number 区分整数和浮点数，其余不认识的类型退化为文本。
func InferValue(v any) (any, ColumnType) {
	switch val := v.(type) {
	case nil:
		return "", TypeText
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, TypeInt64
		}
		if f, err := val.Float64(); err == nil {
			return f, TypeFloat64
		}
		return val.String(), TypeText
	case int64:
		return val, TypeInt64
	case int:
		return int64(val), TypeInt64
	case int32:
		return val, TypeInt32
	case float64:
		return val, TypeFloat64
	case float32:
		return val, TypeFloat32
	case time.Time:
		return val, TypeTimestamp
	case string:
		if ts, ok := ParseTimestamp(val); ok {
			return ts, TypeTimestamp
		}
		return val, TypeText
	case bool:
		return strconv.FormatBool(val), TypeText
	case []byte:
		return string(val), TypeText
	default:
		return fmt.Sprintf("%v", val), TypeText
	}
}

// InferColumnType 推断一列值的统一类型。
// 整数和浮点混合时提升为浮点，类型冲突时退化为文本。
func InferColumnType(values []any) ColumnType {
	if len(values) == 0 {
		return TypeText
	}
	result := ColumnType(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		_, typ := InferValue(v)
		switch {
		case result == ColumnType(-1):
			result = typ
		case result == typ:
			// 类型一致，继续
		case isNumeric(result) && isNumeric(typ):
			result = promoteNumeric(result, typ)
		default:
			return TypeText
		}
	}
	if result == ColumnType(-1) {
		return TypeText
	}
	return result
}

// FormatValue 将值格式化为字符串，用于 CSV 等文本格式输出
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatFloat 格式化浮点数，整数值补小数点，读回时仍按浮点推断
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}

// Coerce 把已推断的值转换为列的最终类型。
// 列内整数浮点混合提升为浮点后，整数值在这里统一转换；
// 无法转换的值退化为字符串。
func Coerce(v any, typ ColumnType) any {
	if v == nil {
		return nil
	}
	switch typ {
	case TypeInt64:
		switch val := v.(type) {
		case int64:
			return val
		case int32:
			return int64(val)
		}
	case TypeInt32:
		if val, ok := v.(int32); ok {
			return val
		}
		if val, ok := v.(int64); ok {
			return int32(val)
		}
	case TypeFloat64:
		switch val := v.(type) {
		case float64:
			return val
		case float32:
			return float64(val)
		case int64:
			return float64(val)
		case int32:
			return float64(val)
		}
	case TypeFloat32:
		switch val := v.(type) {
		case float32:
			return val
		case float64:
			return float32(val)
		case int64:
			return float32(val)
		}
	case TypeTimestamp:
		if val, ok := v.(time.Time); ok {
			return val
		}
	case TypeText:
		return FormatValue(v)
	}
	return FormatValue(v)
}

// isNumeric 判断是否为数值类型
func isNumeric(t ColumnType) bool {
	switch t {
	case TypeInt64, TypeInt32, TypeFloat64, TypeFloat32:
		return true
	}
	return false
}

// promoteNumeric 数值类型提升：整数与浮点混合时取浮点
func promoteNumeric(a, b ColumnType) ColumnType {
	isFloat := func(t ColumnType) bool { return t == TypeFloat64 || t == TypeFloat32 }
	if isFloat(a) || isFloat(b) {
		return TypeFloat64
	}
	if a == TypeInt64 || b == TypeInt64 {
		return TypeInt64
	}
	return TypeInt32
}
