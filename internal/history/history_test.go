package history_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/matthewmueller/webfetch/internal/history"
)

func TestBounded(t *testing.T) {
	is := is.New(t)
	log := history.New(3)
	for i := 0; i < 5; i++ {
		log.Add(fmt.Sprintf("https://example.com/%d", i), "markdown", "http")
	}
	recent := log.Recent()
	is.Equal(len(recent), 3)
	is.Equal(recent[0].URL, "https://example.com/4")
	is.Equal(recent[2].URL, "https://example.com/2")
}

func TestNewestFirst(t *testing.T) {
	is := is.New(t)
	log := history.New(10)
	log.Add("https://example.com/a", "json", "http")
	log.Add("https://example.com/b", "html", "browser")

	recent := log.Recent()
	is.Equal(len(recent), 2)
	is.Equal(recent[0].URL, "https://example.com/b")
	is.Equal(recent[0].Method, "browser")
	is.Equal(recent[1].URL, "https://example.com/a")
	is.Equal(recent[1].Format, "json")
	is.True(!recent[0].Timestamp.IsZero())
}

func TestDefaultSize(t *testing.T) {
	is := is.New(t)
	log := history.New(0)
	for i := 0; i < history.DefaultSize+5; i++ {
		log.Add("https://example.com/", "text", "http")
	}
	is.Equal(len(log.Recent()), history.DefaultSize)
}

func TestConcurrentAdds(t *testing.T) {
	is := is.New(t)
	log := history.New(8)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Add(fmt.Sprintf("https://example.com/%d", i), "text", "http")
		}(i)
	}
	wg.Wait()
	is.Equal(len(log.Recent()), 8)
}
