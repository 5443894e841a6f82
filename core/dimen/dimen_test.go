package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*BP {
		t.Errorf("(1) expected d to be 12bp (%d), is %d", 12*BP, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	_, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	}
}

func TestPxRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	d := FromPx(16)
	if d != 16*PX {
		t.Errorf("expected 16px to be %d, is %d", 16*PX, d)
	}
	if d.Px() != 16.0 {
		t.Errorf("expected roundtrip to yield 16.0, is %f", d.Px())
	}
}

func TestRect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "victor.core")
	defer teardown()
	//
	r := Rect{TopL: Point{10 * PX, 10 * PX}, BotR: Point{30 * PX, 50 * PX}}
	if r.Width() != 20*PX {
		t.Errorf("expected width 20px, is %v", r.Width())
	}
	if r.Height() != 40*PX {
		t.Errorf("expected height 40px, is %v", r.Height())
	}
}
