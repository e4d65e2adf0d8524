package staticproto

import (
	"fmt"
	"log"

	"github.com/staticproto/staticproto/bounded"
)

// ExampleMarshal round-trips a message through a caller-owned buffer.
func ExampleMarshal() {
	event := newTestEvent()
	event.ID = 7
	if err := event.Name.Set("ignition"); err != nil {
		log.Fatal(err)
	}
	event.Temp.Set(451)

	var buf [64]byte
	n, err := Marshal(event, buf[:])
	if err != nil {
		log.Fatal(err)
	}

	decoded := newTestEvent()
	if err := Unmarshal(buf[:n], decoded); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("id=%d name=%s temp=%d\n", decoded.ID, decoded.Name.String(), decoded.Temp.Get())
	// Output: id=7 name=ignition temp=451
}

// ExampleOpt shows explicit presence on an optional field.
func ExampleOpt() {
	var temp Opt[int32]
	fmt.Println(temp.IsSet())

	temp.Set(21)
	fmt.Println(temp.IsSet(), temp.Get())

	temp.Clear()
	fmt.Println(temp.IsSet())
	// Output:
	// false
	// true 21
	// false
}

// ExampleNewOpt pre-sizes the storage inside an optional container field.
func ExampleNewOpt() {
	name := NewOpt(bounded.NewString(16))
	fmt.Println(name.IsSet())

	if err := name.Ptr().Set("booster-2"); err != nil {
		log.Fatal(err)
	}
	name.MarkSet()
	fmt.Println(name.IsSet(), name.Ptr().String())
	// Output:
	// false
	// true booster-2
}
