package gen

import (
	"fmt"

	"github.com/staticproto/staticproto/schema"
)

// genEnum emits an int32-backed enum type, its value constants and a
// String method that falls back to the raw number for undeclared values.
func (e *fileEmitter) genEnum(enum *schema.Enum) {
	e.p("type ", enum.Name, " int32")
	e.p()

	e.p("const (")
	for _, v := range enum.Values {
		e.p(enum.Name, "_", v.Name, " ", enum.Name, " = ", v.Number)
	}
	e.p(")")
	e.p()

	e.need("strconv", "strconv")
	e.p("func (x ", enum.Name, ") String() string {")
	e.p("switch x {")
	for _, v := range enum.Values {
		e.p("case ", enum.Name, "_", v.Name, ":")
		e.p("return ", fmt.Sprintf("%q", v.Name))
	}
	e.p("}")
	e.p("return strconv.Itoa(int(x))")
	e.p("}")
	e.p()
}
