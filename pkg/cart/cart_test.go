package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddItemMergesSameProduct(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	p := Product{ID: 1, Name: "Paracetamol", Price: 250, Image: "/uploads/p1.jpg"}
	c.AddItem(p)
	c.AddItem(p)

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, uint(2), items[0].Quantity)
	require.Equal(t, "Paracetamol", items[0].Name)
}

func TestAddItemIDTypeTolerance(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})
	// Same product, id arrives as a string this time.
	c.AddItem(Product{ID: "1", Name: "Paracetamol", Price: 250})

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, uint(2), items[0].Quantity)
}

func TestSnapshotIgnoresLaterCatalogChanges(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})
	// The catalog price changed; re-adding merges into the existing line and
	// keeps the original snapshot.
	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 999})

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, int64(250), items[0].Price)
	require.Equal(t, int64(500), c.Total())
}

func TestUpdateQuantity(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})
	c.UpdateQuantity(1, 5)
	require.Equal(t, uint(5), c.Items()[0].Quantity)

	// Below 1 is rejected, not treated as a remove.
	c.UpdateQuantity(1, 0)
	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, uint(5), items[0].Quantity)

	// Unknown product is a no-op.
	c.UpdateQuantity(99, 3)
	require.Equal(t, uint(5), c.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})
	c.AddItem(Product{ID: 2, Name: "Bandages", Price: 120})

	c.RemoveItem("1")
	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Bandages", items[0].Name)

	c.RemoveItem(1)
	require.Len(t, c.Items(), 1)
}

func TestTotalRecomputed(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), c.Total())

	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})
	c.AddItem(Product{ID: 2, Name: "Bandages", Price: 120})
	c.UpdateQuantity(1, 3)

	require.Equal(t, int64(3*250+120), c.Total())

	c.Clear()
	require.Empty(t, c.Items())
	require.Equal(t, int64(0), c.Total())
}

func TestFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := &FileStore{Path: path}

	c, err := New(store)
	require.NoError(t, err)
	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})
	c.AddItem(Product{ID: 1, Name: "Paracetamol", Price: 250})

	restored, err := New(store)
	require.NoError(t, err)
	items := restored.Items()
	require.Len(t, items, 1)
	require.Equal(t, uint(2), items[0].Quantity)
	require.Equal(t, int64(500), restored.Total())
}

func TestFileStoreCorruptFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := &FileStore{Path: path}
	require.NoError(t, store.Save([]Item{{ID: "1", Quantity: 1}}))

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c, err := New(store)
	require.NoError(t, err)
	require.Empty(t, c.Items())
}
