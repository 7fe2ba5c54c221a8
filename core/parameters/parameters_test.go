package parameters

import "testing"

func TestGroups(t *testing.T) {
	regs := NewTypesettingRegisters()
	if regs.S(P_LANGUAGE) != "en" {
		t.Fatalf("expected default language en, is %s", regs.S(P_LANGUAGE))
	}
	regs.Begingroup()
	regs.Push(P_LANGUAGE, "de")
	regs.Begingroup()
	regs.Push(P_HYPHENATE, true)
	if regs.S(P_LANGUAGE) != "de" || !regs.B(P_HYPHENATE) {
		t.Errorf("expected inner group to see de + hyphenation")
	}
	regs.Endgroup()
	if regs.B(P_HYPHENATE) {
		t.Errorf("expected hyphenation to be reset after group")
	}
	if regs.S(P_LANGUAGE) != "de" {
		t.Errorf("expected language of outer group to survive, is %s", regs.S(P_LANGUAGE))
	}
	regs.Endgroup()
	if regs.S(P_LANGUAGE) != "en" || regs.Level() != 0 {
		t.Errorf("expected base language after all groups closed, is %s", regs.S(P_LANGUAGE))
	}
	regs.Endgroup() // unbalanced, must not panic
}

func TestEmptyGroupEnds(t *testing.T) {
	regs := NewTypesettingRegisters()
	regs.Begingroup()
	regs.Begingroup()
	regs.Push(P_TOLERANCE, 1000)
	regs.Endgroup()
	regs.Endgroup() // group without pushed values
	if regs.Level() != 0 {
		t.Errorf("expected level 0, is %d", regs.Level())
	}
	if regs.N(P_TOLERANCE) != 200 {
		t.Errorf("expected default tolerance, is %d", regs.N(P_TOLERANCE))
	}
}
