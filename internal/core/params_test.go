package core

import (
	"errors"
	"testing"
)

func TestGameParametersRoster(t *testing.T) {
	params, err := NewGameParameters(2, 1234, 250, 0, IntelligenceLevel2, 3)
	if err != nil {
		t.Fatalf("NewGameParameters() failed: %v", err)
	}

	players := params.Players()
	if len(players) != 4 {
		t.Fatalf("Expected 4 players, got %d", len(players))
	}

	humans := 0
	for i, p := range players {
		if p.Index != i {
			t.Errorf("Expected player %d to have index %d, got %d", i, i, p.Index)
		}
		if p.Type == LocalPlayer {
			humans++
			if i != 2 {
				t.Errorf("Expected human at index 2, found one at %d", i)
			}
		} else if p.Type != LocalBot {
			t.Errorf("Expected player %d to be a bot, got %s", i, p.Type)
		}
	}
	if humans != 1 {
		t.Errorf("Expected exactly one human, got %d", humans)
	}
	if params.HumanPlayerIndex() != 2 {
		t.Errorf("Expected HumanPlayerIndex 2, got %d", params.HumanPlayerIndex())
	}
}

func TestGameParametersAccessors(t *testing.T) {
	params, err := NewGameParameters(0, -99, 400, 3, IntelligenceLevel4, 0)
	if err != nil {
		t.Fatalf("NewGameParameters() failed: %v", err)
	}
	if params.Seed() != -99 {
		t.Errorf("Expected seed -99, got %d", params.Seed())
	}
	if params.LandMass() != 400 {
		t.Errorf("Expected land mass 400, got %d", params.LandMass())
	}
	if params.Density() != 3 {
		t.Errorf("Expected density 3, got %g", params.Density())
	}
	if params.BotIntelligence() != IntelligenceLevel4 {
		t.Errorf("Expected LEVEL_4, got %s", params.BotIntelligence())
	}
	if len(params.Players()) != 1 || params.Players()[0].Type != LocalPlayer {
		t.Errorf("Expected a single human player, got %v", params.Players())
	}
}

func TestGameParametersPlayersIsCopy(t *testing.T) {
	params, err := NewGameParameters(1, 1, 150, 0, IntelligenceLevel1, 2)
	if err != nil {
		t.Fatalf("NewGameParameters() failed: %v", err)
	}

	players := params.Players()
	players[0].Type = LocalPlayer

	if params.Players()[0].Type != LocalBot {
		t.Error("Mutating the returned roster changed the parameters")
	}
}

func TestGameParametersInvalid(t *testing.T) {
	tests := []struct {
		name     string
		human    int
		landMass int
		ai       Intelligence
		bots     int
	}{
		{"negative bots", 0, 150, IntelligenceLevel1, -1},
		{"human below range", -1, 150, IntelligenceLevel1, 3},
		{"human above range", 4, 150, IntelligenceLevel1, 3},
		{"zero land mass", 0, 0, IntelligenceLevel1, 3},
		{"unknown intelligence", 0, 150, Intelligence(9), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameParameters(tt.human, 1, tt.landMass, 0, tt.ai, tt.bots)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestEnumNamesRoundTrip(t *testing.T) {
	for _, s := range MapSizes() {
		got, err := ParseMapSize(s.String())
		if err != nil || got != s {
			t.Errorf("ParseMapSize(%q) = %v, %v", s.String(), got, err)
		}
	}
	for _, d := range Densities() {
		got, err := ParseDensity(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDensity(%q) = %v, %v", d.String(), got, err)
		}
	}
	for _, i := range Intelligences() {
		got, err := ParseIntelligence(i.String())
		if err != nil || got != i {
			t.Errorf("ParseIntelligence(%q) = %v, %v", i.String(), got, err)
		}
	}

	if _, err := ParseMapSize("HUGE"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for unknown map size, got %v", err)
	}
}

func TestEnumFromOrdinal(t *testing.T) {
	if s, ok := MapSizeFromOrdinal(2); !ok || s != MapSizeLarge {
		t.Errorf("Expected LARGE for ordinal 2, got %v (%v)", s, ok)
	}
	if _, ok := MapSizeFromOrdinal(5); ok {
		t.Error("Expected ordinal 5 to be out of range for MapSize")
	}
	if _, ok := DensityFromOrdinal(-1); ok {
		t.Error("Expected ordinal -1 to be out of range for Density")
	}
	if i, ok := IntelligenceFromOrdinal(3); !ok || i != IntelligenceLevel4 {
		t.Errorf("Expected LEVEL_4 for ordinal 3, got %v (%v)", i, ok)
	}
}
