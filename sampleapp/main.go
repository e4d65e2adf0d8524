// Command sampleapp round-trips a telemetry batch through a fixed buffer
// using the generated types in telemetry.sp.go.
package main

//go:generate go run ../cmd/staticproto-gen --proto-dir . --out . --config capacities.yaml telemetry.proto

import (
	"fmt"
	"log"

	"github.com/staticproto/staticproto"
)

func main() {
	batch := NewBatch()
	batch.Seq = 42

	first, err := batch.Readings.Grow()
	if err != nil {
		log.Fatalf("grow readings: %v", err)
	}
	first.SourceId = 1001
	first.Status = Status_STATUS_OK
	if err := first.Label.Set("engine-temp"); err != nil {
		log.Fatalf("set label: %v", err)
	}
	first.Calibration.Set(0.98)
	for _, s := range []uint32{290, 291, 295} {
		if err := first.Samples.Append(s); err != nil {
			log.Fatalf("append sample: %v", err)
		}
	}
	tag, err := first.Tags.Grow()
	if err != nil {
		log.Fatalf("grow tags: %v", err)
	}
	if err := tag.Set("hot-section"); err != nil {
		log.Fatalf("set tag: %v", err)
	}
	first.Position.LatE7 = 284608390
	first.Position.LonE7 = -806043630
	first.Position.AltCm = 1250
	if err := first.Payload.Set([]byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		log.Fatalf("set payload: %v", err)
	}
	if err := first.Origin.SetStationName("pad-39a"); err != nil {
		log.Fatalf("set station: %v", err)
	}

	second, err := batch.Readings.Grow()
	if err != nil {
		log.Fatalf("grow readings: %v", err)
	}
	second.SourceId = 1002
	second.Status = Status_STATUS_DEGRADED
	if err := second.Label.Set("fuel-pressure"); err != nil {
		log.Fatalf("set label: %v", err)
	}
	second.Origin.SetSensorIndex(7)

	var buf [512]byte
	n, err := staticproto.Marshal(batch, buf[:])
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Printf("encoded %d readings into %d bytes\n", batch.Readings.Len(), n)

	decoded := NewBatch()
	if err := staticproto.Unmarshal(buf[:n], decoded); err != nil {
		log.Fatalf("unmarshal: %v", err)
	}

	fmt.Printf("batch seq=%d readings=%d\n", decoded.Seq, decoded.Readings.Len())
	for i := 0; i < decoded.Readings.Len(); i++ {
		r := decoded.Readings.Ptr(i)
		fmt.Printf("  reading %d: source=%d status=%s label=%q samples=%d\n",
			i, r.SourceId, r.Status, r.Label.String(), r.Samples.Len())
		switch r.Origin.Which() {
		case ReadingOrigin_SensorIndex:
			fmt.Printf("    origin: sensor %d\n", r.Origin.SensorIndex())
		case ReadingOrigin_StationName:
			fmt.Printf("    origin: station %q\n", r.Origin.StationName().String())
		}
	}
}
