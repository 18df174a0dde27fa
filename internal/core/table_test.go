package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTable_AddColumn(t *testing.T) {
	table := NewTable()

	if err := table.AddColumn("id", TypeInt64, []any{int64(1), int64(2)}); err != nil {
		t.Fatalf("AddColumn should succeed, got error: %v", err)
	}
	if err := table.AddColumn("name", TypeText, []any{"a", "b"}); err != nil {
		t.Fatalf("AddColumn should succeed, got error: %v", err)
	}

	if table.RowCount() != 2 {
		t.Errorf("RowCount = %d, want 2", table.RowCount())
	}

	names := table.ColumnNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Errorf("ColumnNames = %v, want [id name]", names)
	}
}

func TestTable_AddColumn_RowCountMismatch(t *testing.T) {
	table := NewTable()
	table.AddColumn("id", TypeInt64, []any{int64(1), int64(2)})

	// 行数不一致的列必须被拒绝
	if err := table.AddColumn("name", TypeText, []any{"a"}); err == nil {
		t.Error("AddColumn should fail for mismatched row count")
	}
}

func TestTable_AddColumn_DuplicateName(t *testing.T) {
	table := NewTable()
	table.AddColumn("id", TypeInt64, []any{int64(1)})

	if err := table.AddColumn("id", TypeText, []any{"x"}); err == nil {
		t.Error("AddColumn should fail for duplicate column name")
	}
}

func TestTable_Row(t *testing.T) {
	table := NewTable()
	table.AddColumn("id", TypeInt64, []any{int64(1), int64(2)})
	table.AddColumn("name", TypeText, []any{"a", "b"})

	row := table.Row(1)
	if len(row) != 2 || row[0] != int64(2) || row[1] != "b" {
		t.Errorf("Row(1) = %v, want [2 b]", row)
	}
}

func TestInferString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ColumnType
	}{
		{"整数", "42", TypeInt64},
		{"负整数", "-7", TypeInt64},
		{"浮点数", "3.14", TypeFloat64},
		{"科学计数法", "1e6", TypeFloat64},
		{"RFC3339时间戳", "2024-05-01T12:30:00Z", TypeTimestamp},
		{"日期时间", "2024-05-01 12:30:00", TypeTimestamp},
		{"普通文本", "hello", TypeText},
		{"空字符串", "", TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := InferString(tt.input)
			if got != tt.want {
				t.Errorf("InferString(%q) type = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInferValue_JSONNumber(t *testing.T) {
	v, typ := InferValue(json.Number("42"))
	if typ != TypeInt64 || v != int64(42) {
		t.Errorf("InferValue(42) = (%v, %v), want (42, int64)", v, typ)
	}

	v, typ = InferValue(json.Number("2.5"))
	if typ != TypeFloat64 || v != 2.5 {
		t.Errorf("InferValue(2.5) = (%v, %v), want (2.5, float64)", v, typ)
	}
}

func TestInferValue_Bool(t *testing.T) {
	// 布尔值不在标量类型集合内，退化为文本
	v, typ := InferValue(true)
	if typ != TypeText || v != "true" {
		t.Errorf("InferValue(true) = (%v, %v), want (true, text)", v, typ)
	}
}

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   ColumnType
	}{
		{"全整数", []any{int64(1), int64(2)}, TypeInt64},
		{"整数浮点混合提升为浮点", []any{int64(1), 2.5}, TypeFloat64},
		{"类型冲突退化为文本", []any{int64(1), "abc"}, TypeText},
		{"带空值", []any{nil, int64(3)}, TypeInt64},
		{"全空", []any{nil, nil}, TypeText},
		{"空列", []any{}, TypeText},
		{"时间戳", []any{time.Now(), time.Now()}, TypeTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferColumnType(tt.values); got != tt.want {
				t.Errorf("InferColumnType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	// 整数提升到浮点列
	if v := Coerce(int64(3), TypeFloat64); v != float64(3) {
		t.Errorf("Coerce(3, float64) = %v, want 3.0", v)
	}

	// 文本列统一转字符串
	if v := Coerce(int64(3), TypeText); v != "3" {
		t.Errorf("Coerce(3, text) = %v, want \"3\"", v)
	}

	// 空值保持为空
	if v := Coerce(nil, TypeInt64); v != nil {
		t.Errorf("Coerce(nil) = %v, want nil", v)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		input any
		want  string
	}{
		{int64(42), "42"},
		{3.5, "3.5"},
		// 整数值的浮点数保留小数点，读回时仍按浮点推断
		{1.0, "1.0"},
		{float32(2), "2.0"},
		{1e21, "1e+21"},
		{"hello", "hello"},
		{nil, ""},
		{ts, "2024-05-01T12:00:00Z"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.input); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestColumnType_String(t *testing.T) {
	if TypeInt64.String() != "int64" {
		t.Errorf("TypeInt64.String() = %s, want int64", TypeInt64.String())
	}
	if ColumnType(99).String() != "unknown" {
		t.Errorf("unknown type String() = %s, want unknown", ColumnType(99).String())
	}
}
