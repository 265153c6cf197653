package cache_test

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/matthewmueller/webfetch/internal/cache"
)

func TestGetSet(t *testing.T) {
	is := is.New(t)
	c := cache.New[string](time.Minute)

	_, ok := c.Get("a")
	is.True(!ok)

	c.Set("a", "one")
	v, ok := c.Get("a")
	is.True(ok)
	is.Equal(v, "one")

	c.Set("a", "two")
	v, _ = c.Get("a")
	is.Equal(v, "two")
}

func TestExpiry(t *testing.T) {
	is := is.New(t)
	c := cache.New[int](10 * time.Millisecond)
	c.Set("n", 42)

	v, ok := c.Get("n")
	is.True(ok)
	is.Equal(v, 42)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("n")
	is.True(!ok)
}
