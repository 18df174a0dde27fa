package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"dataio/internal/core"
)

// readJSON 解析行对象数组格式的JSON文件。
// 列顺序取各行对象首次出现的键顺序，缺失的键按空值处理，
// 数值经json.Number区分整数和浮点，符合时间戳格式的字符串还原为时间戳。
func readJSON(path string) (*core.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	var rows []map[string]any
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %v", err)
	}

	columns, err := orderedKeys(content)
	if err != nil {
		return nil, err
	}

	data := core.NewTable()
	for _, name := range columns {
		raw := make([]any, len(rows))
		for i, row := range rows {
			if v, ok := row[name]; ok && v != nil {
				parsed, _ := core.InferValue(v)
				raw[i] = parsed
			}
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

// orderedKeys 按token流扫描行对象数组，收集键的首次出现顺序。
// map解码会打乱键序，这里单独扫一遍保住列顺序。
func orderedKeys(content []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))

	// 数组开始
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %v", err)
	}

	var keys []string
	seen := make(map[string]bool)
	for decoder.More() {
		// 对象开始
		if _, err := decoder.Token(); err != nil {
			return nil, fmt.Errorf("解析JSON失败: %v", err)
		}
		// 对象内token交替为键和值，值用Decode整体跳过
		for {
			tok, err := decoder.Token()
			if err != nil {
				return nil, fmt.Errorf("解析JSON失败: %v", err)
			}
			if delim, ok := tok.(json.Delim); ok && delim == '}' {
				break
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("解析JSON失败: 行对象的键必须是字符串")
			}
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
			var skip any
			if err := decoder.Decode(&skip); err != nil {
				return nil, fmt.Errorf("解析JSON失败: %v", err)
			}
		}
	}

	return keys, nil
}

// writeJSON 把表格数据序列化为行对象数组，保持列顺序
func writeJSON(data *core.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < data.RowCount(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range data.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col.Name)
			if err != nil {
				return err
			}
			val, err := jsonValue(col.Values[i], col.Type)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	if _, err := f.Write(buf.Bytes()); err != nil {
		return err
	}
	return nil
}

// jsonValue 按列类型编码一个JSON值。
// 浮点列的整数值补小数点输出，读回时不会退化为整数列
func jsonValue(v any, typ core.ColumnType) ([]byte, error) {
	switch typ {
	case core.TypeFloat64, core.TypeFloat32:
		var f float64
		switch val := v.(type) {
		case float64:
			f = val
		case float32:
			f = float64(val)
		default:
			return json.Marshal(v)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return json.Marshal(v)
		}
		return []byte(core.FormatValue(v)), nil
	}
	return json.Marshal(v)
}
