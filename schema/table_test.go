package schema

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("测试 Table", t, func() {
		table := NewTable(
			[]string{"Name", "Age"},
			[][]any{
				{"alice", 30},
				{"bob", nil},
			},
		)

		Convey("基本信息", func() {
			So(table.NumRows(), ShouldEqual, 2)
			So(table.NumColumns(), ShouldEqual, 2)
			So(table.ColumnNames(), ShouldResemble, []string{"Name", "Age"})
		})

		Convey("ColumnNames 返回副本", func() {
			names := table.ColumnNames()
			names[0] = "Changed"
			So(table.ColumnNames()[0], ShouldEqual, "Name")
		})

		Convey("转换成记录列表", func() {
			records := table.Records()
			So(len(records), ShouldEqual, 2)
			So(records[0]["Name"], ShouldEqual, "alice")
			So(records[0]["Age"], ShouldEqual, 30)
			So(records[1]["Age"], ShouldBeNil)
		})

		Convey("按名字取列", func() {
			ages, ok := table.Column("Age")
			So(ok, ShouldBeTrue)
			So(ages, ShouldResemble, []any{30, nil})

			_, ok = table.Column("Unknown")
			So(ok, ShouldBeFalse)
		})

		Convey("重名列时记录取后者，取列取前者", func() {
			dup := NewTable(
				[]string{"A", "A"},
				[][]any{{1, 2}},
			)
			So(dup.Records()[0]["A"], ShouldEqual, 2)

			values, ok := dup.Column("A")
			So(ok, ShouldBeTrue)
			So(values, ShouldResemble, []any{1})
		})
	})
}
