package assign

import "testing"

func TestFromSeeds(t *testing.T) {
	one, two := 1, 2
	seeds := []Seed{
		{
			Location: "NY_9E71st",
			Shoots: []Shoot{
				{Index: &one, StartID: 100, EndID: 199},
				{Index: &two, StartID: 200, EndID: 299, Confidence: 0.7},
			},
		},
		{
			Location: "LSJ",
			Shoots: []Shoot{
				{Index: nil, StartID: 300, EndID: 399},
			},
		},
	}

	a := FromSeeds(150, seeds)
	if a.Location != "NY_9E71st" || a.Shoot == nil || *a.Shoot != 1 {
		t.Errorf("id 150: %+v", a)
	}
	if a.Confidence != 0.9 {
		t.Errorf("id 150 confidence = %f, want default 0.9", a.Confidence)
	}
	if a.Method != MethodRangeSeed {
		t.Errorf("method = %q", a.Method)
	}

	a = FromSeeds(250, seeds)
	if a.Confidence != 0.7 {
		t.Errorf("id 250 confidence = %f, want 0.7", a.Confidence)
	}

	a = FromSeeds(350, seeds)
	if a.Location != "LSJ" || a.Shoot != nil {
		t.Errorf("id 350: %+v", a)
	}

	a = FromSeeds(999, seeds)
	if a.Location != "" || a.Confidence != 0.5 {
		t.Errorf("unmatched id: %+v", a)
	}

	// boundaries are inclusive
	for _, id := range []int64{100, 199} {
		if a := FromSeeds(id, seeds); a.Location != "NY_9E71st" {
			t.Errorf("id %d not covered", id)
		}
	}
}
