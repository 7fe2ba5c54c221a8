package percent

import (
	"testing"

	"github.com/npillmayer/xtl/core/dimen"
)

func TestPercent(t *testing.T) {
	p, err := FromString("50%")
	if err != nil || p != 50 {
		t.Fatalf("expected 50%%, is %v (%v)", p, err)
	}
	if d := p.Of(200 * dimen.BP); d != 100*dimen.BP {
		t.Errorf("expected 50%% of 200bp to be 100bp, is %v", d)
	}
	if FromInt(150) != 100 || FromFloat(-3) != 0 {
		t.Errorf("expected percentages to be clamped")
	}
	if p.String() != "50%" {
		t.Errorf("expected string 50%%, is %s", p.String())
	}
}
