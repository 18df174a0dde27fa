package file

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"dataio/internal/core"
)

// readParquet 读取自描述schema的parquet文件。
// 列类型直接取自文件内嵌的schema，列顺序跟随schema的字段顺序。
func readParquet(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("解析parquet失败: %v", err)
	}

	fields := pf.Schema().Fields()
	types := make([]core.ColumnType, len(fields))
	columns := make([][]any, len(fields))
	for i, field := range fields {
		types[i] = parquetColumnType(field)
		columns[i] = []any{}
	}

	for _, rowGroup := range pf.RowGroups() {
		if err := readRowGroup(rowGroup, types, columns); err != nil {
			return nil, fmt.Errorf("解析parquet失败: %v", err)
		}
	}

	data := core.NewTable()
	for i, field := range fields {
		if err := data.AddColumn(field.Name(), types[i], columns[i]); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// readRowGroup 按行读取一个row group，把值追加到各列
func readRowGroup(rowGroup parquet.RowGroup, types []core.ColumnType, columns [][]any) error {
	rows := rowGroup.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 128)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, v := range row {
				i := v.Column()
				if v.IsNull() {
					columns[i] = append(columns[i], nil)
					continue
				}
				columns[i] = append(columns[i], parquetGoValue(v, types[i]))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// writeParquet 把表格数据写为parquet文件，schema内嵌在文件中。
// 时间戳按毫秒精度存储，亚毫秒部分会丢失；
// parquet的schema按字段名排序，读回时的列顺序以schema为准。
func writeParquet(data *core.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fields := parquet.Group{}
	for _, col := range data.Columns {
		fields[col.Name] = parquetNode(col.Type)
	}
	schema := parquet.NewSchema("table", fields)

	// schema字段按名称排序，先建立schema列序到表列序的映射
	order := make([]int, len(schema.Fields()))
	for i, field := range schema.Fields() {
		for j, col := range data.Columns {
			if col.Name == field.Name() {
				order[i] = j
				break
			}
		}
	}

	w := parquet.NewWriter(f, schema)
	for i := 0; i < data.RowCount(); i++ {
		row := make(parquet.Row, len(order))
		for k, colIndex := range order {
			col := data.Columns[colIndex]
			row[k] = parquetValue(col.Values[i], col.Type, k)
		}
		if _, err := w.WriteRows([]parquet.Row{row}); err != nil {
			return err
		}
	}

	return w.Close()
}

// parquetNode 把列类型映射为parquet schema节点，全部按可空处理
func parquetNode(typ core.ColumnType) parquet.Node {
	switch typ {
	case core.TypeInt64:
		return parquet.Optional(parquet.Int(64))
	case core.TypeInt32:
		return parquet.Optional(parquet.Int(32))
	case core.TypeFloat64:
		return parquet.Optional(parquet.Leaf(parquet.DoubleType))
	case core.TypeFloat32:
		return parquet.Optional(parquet.Leaf(parquet.FloatType))
	case core.TypeTimestamp:
		return parquet.Optional(parquet.Timestamp(parquet.Millisecond))
	default:
		return parquet.Optional(parquet.String())
	}
}

// parquetValue 把一个值编码为带层级信息的parquet值。
// 先按列类型收敛值的Go类型，窄类型列里的宽类型数值在这里统一转换
func parquetValue(v any, typ core.ColumnType, columnIndex int) parquet.Value {
	if v == nil {
		return parquet.Value{}.Level(0, 0, columnIndex)
	}

	var value parquet.Value
	switch val := core.Coerce(v, typ).(type) {
	case int64:
		value = parquet.Int64Value(val)
	case int32:
		value = parquet.Int32Value(val)
	case float64:
		value = parquet.DoubleValue(val)
	case float32:
		value = parquet.FloatValue(val)
	case time.Time:
		value = parquet.Int64Value(val.UnixMilli())
	default:
		value = parquet.ByteArrayValue([]byte(core.FormatValue(val)))
	}
	return value.Level(0, 1, columnIndex)
}

// parquetColumnType 从schema字段还原列类型
func parquetColumnType(field parquet.Field) core.ColumnType {
	t := field.Type()
	if lt := t.LogicalType(); lt != nil {
		if lt.Timestamp != nil {
			return core.TypeTimestamp
		}
		if lt.UTF8 != nil {
			return core.TypeText
		}
	}

	switch t.Kind() {
	case parquet.Int64:
		return core.TypeInt64
	case parquet.Int32:
		return core.TypeInt32
	case parquet.Double:
		return core.TypeFloat64
	case parquet.Float:
		return core.TypeFloat32
	default:
		return core.TypeText
	}
}

// parquetGoValue 把parquet值解码为列类型对应的Go值
func parquetGoValue(v parquet.Value, typ core.ColumnType) any {
	switch typ {
	case core.TypeInt64:
		return v.Int64()
	case core.TypeInt32:
		return v.Int32()
	case core.TypeFloat64:
		return v.Double()
	case core.TypeFloat32:
		return v.Float()
	case core.TypeTimestamp:
		return time.UnixMilli(v.Int64()).UTC()
	default:
		return string(v.ByteArray())
	}
}
