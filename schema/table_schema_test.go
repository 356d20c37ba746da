package schema

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hatlonely/datafaker/datatype"
)

func TestTableSchema_AddColumn(t *testing.T) {
	Convey("测试 TableSchema 增删列", t, func() {
		ts := NewTableSchema()

		Convey("追加 *ColumnSchema", func() {
			column, err := NewColumnSchemaWithOptions(&ColumnSchemaOptions{Name: "Age", Datatype: "integer"})
			So(err, ShouldBeNil)
			So(ts.AddColumn(column), ShouldBeNil)
			So(len(ts.Columns()), ShouldEqual, 1)
			So(ts.Columns()[0].Name(), ShouldEqual, "Age")
		})

		Convey("追加列名字符串时包装成默认字符串列", func() {
			So(ts.AddColumn("Name"), ShouldBeNil)
			So(len(ts.Columns()), ShouldEqual, 1)
			So(ts.Columns()[0].Name(), ShouldEqual, "Name")
		})

		Convey("追加不支持的类型", func() {
			err := ts.AddColumn(123)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid column")
		})

		Convey("追加空指针", func() {
			var column *ColumnSchema
			So(ts.AddColumn(column), ShouldNotBeNil)
		})

		Convey("按名字删除列，重名列一起删除", func() {
			So(ts.AddColumn("A"), ShouldBeNil)
			So(ts.AddColumn("B"), ShouldBeNil)
			So(ts.AddColumn("A"), ShouldBeNil)

			ts.RemoveColumn("A")
			So(len(ts.Columns()), ShouldEqual, 1)
			So(ts.Columns()[0].Name(), ShouldEqual, "B")

			// 没有匹配时不做任何事
			ts.RemoveColumn("C")
			So(len(ts.Columns()), ShouldEqual, 1)
		})
	})
}

func TestTableSchema_SelectColumns(t *testing.T) {
	Convey("测试 TableSchema 筛选列", t, func() {
		ts := NewTableSchema()
		So(ts.AddColumn("A"), ShouldBeNil)
		So(ts.AddColumn("B"), ShouldBeNil)
		So(ts.AddColumn("C"), ShouldBeNil)

		Convey("保留列的相对顺序，忽略不存在的名字", func() {
			selected := ts.SelectColumns([]string{"C", "A", "D"})
			So(len(selected.Columns()), ShouldEqual, 2)
			So(selected.Columns()[0].Name(), ShouldEqual, "A")
			So(selected.Columns()[1].Name(), ShouldEqual, "C")
		})

		Convey("不修改原模式", func() {
			_ = ts.SelectColumns([]string{"A"})
			So(len(ts.Columns()), ShouldEqual, 3)
		})
	})
}

func TestTableSchema_Generate(t *testing.T) {
	Convey("测试 TableSchema 生成数据", t, func() {
		Convey("没有定义列时报错", func() {
			ts := NewTableSchema()
			_, err := ts.Generate(10)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no columns defined")
		})

		Convey("按列顺序生成指定行数", func() {
			name, err := NewColumnSchemaWithOptions(&ColumnSchemaOptions{Name: "Name"})
			So(err, ShouldBeNil)
			age, err := NewColumnSchemaWithOptions(&ColumnSchemaOptions{
				Name:     "Age",
				Datatype: "integer",
				Type: &datatype.Options{
					MinValue: float64Ptr(18),
					MaxValue: float64Ptr(65),
				},
			})
			So(err, ShouldBeNil)

			ts := NewTableSchema(name, age)
			table, err := ts.Generate(5)
			So(err, ShouldBeNil)
			So(table.NumRows(), ShouldEqual, 5)
			So(table.NumColumns(), ShouldEqual, 2)
			So(table.ColumnNames(), ShouldResemble, []string{"Name", "Age"})

			for _, row := range table.Rows() {
				So(row[0], ShouldHaveSameTypeAs, "")
				So(row[1], ShouldBeBetweenOrEqual, 18, 65)
			}
		})

		Convey("生成 0 行", func() {
			ts := NewTableSchema()
			So(ts.AddColumn("A"), ShouldBeNil)
			table, err := ts.Generate(0)
			So(err, ShouldBeNil)
			So(table.NumRows(), ShouldEqual, 0)
			So(table.NumColumns(), ShouldEqual, 1)
		})
	})
}

func TestNewTableSchemaFromConfigs(t *testing.T) {
	Convey("测试表格化配置构造", t, func() {
		Convey("正常构造", func() {
			ts, err := NewTableSchemaFromConfigs([]*ColumnConfig{
				{Name: "Name", Datatype: "string", Length: intPtr(8)},
				{Name: "Age", Datatype: "integer", Min: float64Ptr(18), Max: float64Ptr(65)},
				{Name: "Country", Datatype: "category", Domain: []string{"USA", "Canada", "UK"}},
				{Name: "Email", Completeness: float64Ptr(0.25)},
			})
			So(err, ShouldBeNil)
			So(len(ts.Columns()), ShouldEqual, 4)

			table, err := ts.Generate(2000)
			So(err, ShouldBeNil)

			ages, ok := table.Column("Age")
			So(ok, ShouldBeTrue)
			for _, v := range ages {
				So(v, ShouldBeBetweenOrEqual, 18, 65)
			}

			countries, ok := table.Column("Country")
			So(ok, ShouldBeTrue)
			for _, v := range countries {
				So(v, ShouldBeIn, "USA", "Canada", "UK")
			}

			emails, ok := table.Column("Email")
			So(ok, ShouldBeTrue)
			nulls := 0
			for _, v := range emails {
				if v == nil {
					nulls++
				}
			}
			So(nulls, ShouldBeBetween, 1300, 1700)
		})

		Convey("某一行配置不合法时整体失败，错误里带上行号", func() {
			_, err := NewTableSchemaFromConfigs([]*ColumnConfig{
				{Name: "Name"},
				{Name: "Age", Datatype: "integer", Min: float64Ptr(100), Max: float64Ptr(10)},
			})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid column config at row 1")
		})

		Convey("配置为空指针", func() {
			_, err := NewTableSchemaFromConfigs([]*ColumnConfig{nil})
			So(err, ShouldNotBeNil)
		})
	})
}
