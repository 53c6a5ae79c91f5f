package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/akagifreeez/trade-values/internal/models"
)

func testItems() []models.Item {
	return []models.Item{
		{ID: 1, Name: "ak47 default", Category: "rifles"},
		{ID: 2, Name: "m4a1 zebra", Category: "rifles"},
		{ID: 3, Name: "karambit", Category: "knives"},
		{ID: 4, Name: "awp bones", Category: "rifles"},
		{ID: 5, Name: "bayonet", Category: "knives"},
		{ID: 6, Name: "famas", Category: "rifles"},
		{ID: 7, Name: "galil", Category: "rifles"},
		{ID: 8, Name: "scout", Category: "rifles"},
		{ID: 9, Name: "aug", Category: "rifles"},
	}
}

func TestNew_duplicateID(t *testing.T) {
	t.Parallel()

	items := []models.Item{{ID: 1}, {ID: 2}, {ID: 1}}
	if _, err := New(items); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestNew_copiesItems(t *testing.T) {
	t.Parallel()

	items := testItems()
	c, err := New(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items[0].Name = "changed"
	if got := c.Items()[0].Name; got != "ak47 default" {
		t.Errorf("catalog shares caller slice, got name %q", got)
	}
	if c.Len() != len(items) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(items))
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	c, err := New(testItems())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]struct {
		id     int64
		want   string
		wantOK bool
	}{
		"hit":  {id: 3, want: "karambit", wantOK: true},
		"miss": {id: 99, wantOK: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			item, ok := c.FindByID(tc.id)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if item.Name != tc.want {
				t.Errorf("name = %q, want %q", item.Name, tc.want)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	t.Parallel()

	c, err := New(testItems())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, _ := c.FindByID(2)
	var ids []int64
	for _, s := range c.Similar(item, DefaultSimilarLimit) {
		ids = append(ids, s.ID)
	}
	if want := []int64{1, 4, 6, 7, 8}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Similar ids = %v, want %v", ids, want)
	}

	knife, _ := c.FindByID(5)
	similar := c.Similar(knife, 0)
	if len(similar) != 1 || similar[0].ID != 3 {
		t.Errorf("Similar(bayonet) = %v, want only karambit", similar)
	}
}

func TestTabs(t *testing.T) {
	t.Parallel()

	c, err := New(testItems())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := c.Tabs(), []string{"all", "rifles", "knives"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tabs() = %v, want %v", got, want)
	}
}
