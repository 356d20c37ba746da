package datatype

import (
	"math/rand"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func float64Ptr(v float64) *float64 {
	return &v
}

func TestIntegerType_Generate(t *testing.T) {
	it, err := NewIntegerTypeWithOptions(&IntegerTypeOptions{
		MinValue: intPtr(18),
		MaxValue: intPtr(65),
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}

	for i := 0; i < 10000; i++ {
		value := it.Generate().(int)
		if value < 18 || value > 65 {
			t.Fatalf("生成值应该在 [18, 65] 范围内，但得到 %d", value)
		}
	}
}

func TestIntegerType_DefaultBounds(t *testing.T) {
	tests := []struct {
		name    string
		options *IntegerTypeOptions
		wantMin int
		wantMax int
	}{
		{"两侧都缺省", &IntegerTypeOptions{}, 0, 100},
		{"只有下界", &IntegerTypeOptions{MinValue: intPtr(50)}, 50, 150},
		{"只有下界且为负", &IntegerTypeOptions{MinValue: intPtr(-300)}, -300, 100},
		{"只有上界", &IntegerTypeOptions{MaxValue: intPtr(500)}, 0, 500},
		{"只有上界且较小", &IntegerTypeOptions{MaxValue: intPtr(50)}, -50, 50},
	}

	for _, tt := range tests {
		it, err := NewIntegerTypeWithOptions(tt.options)
		if err != nil {
			t.Fatalf("%s: 构造失败: %v", tt.name, err)
		}
		if it.MinValue() != tt.wantMin || it.MaxValue() != tt.wantMax {
			t.Fatalf("%s: 期望边界 [%d, %d]，但得到 [%d, %d]",
				tt.name, tt.wantMin, tt.wantMax, it.MinValue(), it.MaxValue())
		}
	}
}

func TestIntegerType_InvalidBounds(t *testing.T) {
	if _, err := NewIntegerTypeWithOptions(&IntegerTypeOptions{
		MinValue: intPtr(50),
		MaxValue: intPtr(10),
	}); err == nil {
		t.Fatal("min >= max 应该构造失败")
	}

	if _, err := NewIntegerTypeWithOptions(&IntegerTypeOptions{
		MinValue: intPtr(10),
		MaxValue: intPtr(10),
	}); err == nil {
		t.Fatal("min == max 应该构造失败")
	}
}

func TestIntegerType_FromOptions(t *testing.T) {
	// 配置里的数字是浮点形式，构造时截断成整数
	dt, err := New("integer", &Options{
		MinValue: float64Ptr(18),
		MaxValue: float64Ptr(65),
	})
	if err != nil {
		t.Fatalf("构造失败: %v", err)
	}

	it := dt.(*IntegerType)
	if it.MinValue() != 18 || it.MaxValue() != 65 {
		t.Fatalf("期望边界 [18, 65]，但得到 [%d, %d]", it.MinValue(), it.MaxValue())
	}
}
