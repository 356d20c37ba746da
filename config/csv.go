package config

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/schema"
)

// DecodeCSV 解析 CSV 格式配置
// 第一行是表头，表头不区分大小写，可识别的列为
// name/datatype/length/domain/max/min/completeness，未识别的列被忽略
// domain 单元格里的枚举值用逗号分隔（单元格本身需要按 CSV 规则加引号）
// 空单元格以及 na/n/a/nan/null/none 等占位符都视为缺省
func DecodeCSV(data []byte) ([]*schema.ColumnConfig, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv.ReadAll failed")
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var configs []*schema.ColumnConfig
	for i, record := range records[1:] {
		config := &schema.ColumnConfig{}
		for j, cell := range record {
			if j >= len(header) {
				break
			}
			if isAbsentCell(cell) {
				continue
			}
			cell = strings.TrimSpace(cell)

			switch header[j] {
			case "name":
				config.Name = cell
			case "datatype":
				config.Datatype = cell
			case "length":
				length, err := strconv.Atoi(cell)
				if err != nil {
					return nil, errors.Wrapf(err, "invalid length at row %d", i+1)
				}
				config.Length = &length
			case "domain", "categories":
				config.Domain = splitDomain(cell)
			case "max":
				maxValue, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "invalid max at row %d", i+1)
				}
				config.Max = &maxValue
			case "min":
				minValue, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "invalid min at row %d", i+1)
				}
				config.Min = &minValue
			case "completeness":
				completeness, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "invalid completeness at row %d", i+1)
				}
				config.Completeness = &completeness
			}
		}
		configs = append(configs, config)
	}

	return configs, nil
}

// isAbsentCell 判断单元格是否为缺省值
func isAbsentCell(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "n/a", "nan", "null", "none", "nil":
		return true
	}
	return false
}

func splitDomain(cell string) []string {
	parts := strings.Split(cell, ",")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
