package tagmodel

import "testing"

func TestTagDisplay(t *testing.T) {
	cases := []struct {
		name string
		tag  Tag
		want string
	}{
		{"unlabeled", From("photos"), "photos"},
		{"labeled", New("mime", true, "text|plain"), "mime:text|plain"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.tag.Display(); got != c.want {
				t.Errorf("Display() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestTagEqualityIgnoresSingleton(t *testing.T) {
	a := New("mime", true, "text|plain")
	b := New("mime", false, "text|plain")
	if a.key() != b.key() {
		t.Errorf("expected tags with same (label,value) to share a key regardless of singleton")
	}
}

func TestTagEqualityDistinguishesValue(t *testing.T) {
	a := New("mime", true, "text|plain")
	b := New("mime", true, "text|csv")
	if a.key() == b.key() {
		t.Errorf("expected distinct values to produce distinct keys")
	}
}

func TestTagEqualityDistinguishesLabeled(t *testing.T) {
	a := From("value")
	b := New("label", false, "value")
	if a.key() == b.key() {
		t.Errorf("expected labeled and unlabeled tags with the same value to differ")
	}
}
