package news

import "testing"

func TestFilterSignature(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{"defaults", DefaultFilters(), "any-relevance-all"},
		{"zero value falls back to defaults", Filters{}, "any-relevance-all"},
		{"custom", Filters{DateRange: DateWeek, SortBy: SortNewest, Source: "TechCrunch"}, "week-newest-TechCrunch"},
		{"partial", Filters{DateRange: DateToday}, "today-relevance-all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Signature(); got != tt.want {
				t.Errorf("Signature() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTopicsExcludeWildcard(t *testing.T) {
	for _, topic := range Topics() {
		if topic == TopicAll {
			t.Fatal("Topics() contains the wildcard")
		}
	}
	if len(Topics()) != 12 {
		t.Errorf("Topics() = %d entries", len(Topics()))
	}
}

func TestPoolKeyMapsEveryTopic(t *testing.T) {
	for _, topic := range Topics() {
		key := poolKey(topic)
		if _, ok := topicImages[key]; !ok {
			t.Errorf("poolKey(%q) = %q has no pool", topic, key)
		}
	}
	// The wildcard and unknown values share the AI pool.
	if poolKey(TopicAll) != "AI" {
		t.Errorf("poolKey(All) = %q", poolKey(TopicAll))
	}
	if poolKey(Topic("made up")) != "AI" {
		t.Errorf("poolKey(unknown) = %q", poolKey(Topic("made up")))
	}
}

func TestTopicImagesNoRepeatWithinPool(t *testing.T) {
	pool := topicImages[poolKey(TopicSpace)]
	got := TopicImages(TopicSpace, len(pool))

	seen := make(map[string]bool, len(got))
	for _, u := range got {
		if seen[u] {
			t.Fatalf("image repeated before pool exhausted: %s", u)
		}
		seen[u] = true
	}
}

func TestTopicImagesWrapsPastPoolSize(t *testing.T) {
	pool := topicImages[poolKey(TopicSpace)]
	n := len(pool) + 3
	got := TopicImages(TopicSpace, n)
	if len(got) != n {
		t.Fatalf("got %d images, want %d", len(got), n)
	}
	// Past the pool size the sequence wraps around.
	for i := len(pool); i < n; i++ {
		if got[i] != got[i-len(pool)] {
			t.Errorf("index %d did not wrap", i)
		}
	}
}
