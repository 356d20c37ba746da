// Package config 负责表格化列配置的读取
// 配置是行式的：一行描述一个列，字段见 schema.ColumnConfig
// 支持 json/yaml/toml/ini/csv 五种格式，按文件扩展名分发
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/hatlonely/datafaker/schema"
)

// Load 读取配置文件并解析成列配置列表，按扩展名选择解析格式
func Load(filePath string) ([]*schema.ColumnConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s failed", filePath)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".toml":
		return DecodeTOML(data)
	case ".ini":
		return DecodeINI(data)
	case ".csv":
		return DecodeCSV(data)
	default:
		return nil, errors.Errorf("unsupported config format: %s", filepath.Ext(filePath))
	}
}

// DecodeJSON 解析 JSON 格式配置，顶层是列配置数组
func DecodeJSON(data []byte) ([]*schema.ColumnConfig, error) {
	var configs []*schema.ColumnConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal failed")
	}
	return configs, nil
}

// DecodeYAML 解析 YAML 格式配置，顶层是列配置数组
func DecodeYAML(data []byte) ([]*schema.ColumnConfig, error) {
	var configs []*schema.ColumnConfig
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal failed")
	}
	return configs, nil
}

// DecodeTOML 解析 TOML 格式配置，列配置放在 [[columns]] 表数组里
func DecodeTOML(data []byte) ([]*schema.ColumnConfig, error) {
	var wrapper struct {
		Columns []*schema.ColumnConfig `toml:"columns"`
	}
	if err := toml.Unmarshal(data, &wrapper); err != nil {
		return nil, errors.Wrap(err, "toml.Unmarshal failed")
	}
	return wrapper.Columns, nil
}

// DecodeINI 解析 INI 格式配置，一个 section 对应一个列，section 名即列名
//
//	[Age]
//	datatype = integer
//	min = 18
//	max = 65
func DecodeINI(data []byte) ([]*schema.ColumnConfig, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, errors.Wrap(err, "ini.Load failed")
	}

	var configs []*schema.ColumnConfig
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		config := &schema.ColumnConfig{Name: section.Name()}
		if section.HasKey("datatype") {
			config.Datatype = section.Key("datatype").String()
		}
		if section.HasKey("length") {
			length, err := section.Key("length").Int()
			if err != nil {
				return nil, errors.Wrapf(err, "invalid length in section %s", section.Name())
			}
			config.Length = &length
		}
		if section.HasKey("domain") {
			config.Domain = section.Key("domain").Strings(",")
		}
		if section.HasKey("min") {
			minValue, err := section.Key("min").Float64()
			if err != nil {
				return nil, errors.Wrapf(err, "invalid min in section %s", section.Name())
			}
			config.Min = &minValue
		}
		if section.HasKey("max") {
			maxValue, err := section.Key("max").Float64()
			if err != nil {
				return nil, errors.Wrapf(err, "invalid max in section %s", section.Name())
			}
			config.Max = &maxValue
		}
		if section.HasKey("completeness") {
			completeness, err := section.Key("completeness").Float64()
			if err != nil {
				return nil, errors.Wrapf(err, "invalid completeness in section %s", section.Name())
			}
			config.Completeness = &completeness
		}
		configs = append(configs, config)
	}

	return configs, nil
}
