package file

import (
	"encoding/csv"
	"fmt"
	"os"

	"dataio/internal/core"
)

// readCSV 解析带表头的逗号分隔文件。
// CSV不携带类型信息，每列按单元格内容重新推断：
// 整列可解析为整数取int64，整数浮点混合提升为float64，
// 时间戳格式的列还原为时间戳，其余按文本处理，空单元格视为空值。
func readCSV(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析CSV失败: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("解析CSV失败: 缺少表头行")
	}

	header := records[0]
	rows := records[1:]

	data := core.NewTable()
	for j, name := range header {
		raw := make([]any, len(rows))
		for i, row := range rows {
			if j >= len(row) || row[j] == "" {
				continue
			}
			parsed, _ := core.InferString(row[j])
			raw[i] = parsed
		}

		typ := core.InferColumnType(raw)
		values := make([]any, len(raw))
		for i, v := range raw {
			values[i] = core.Coerce(v, typ)
		}

		if err := data.AddColumn(name, typ, values); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// writeCSV 把表格数据写为带表头的CSV文件，不输出行号列
func writeCSV(data *core.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(data.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, len(data.Columns))
	for i := 0; i < data.RowCount(); i++ {
		for j, col := range data.Columns {
			record[j] = core.FormatValue(col.Values[i])
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
