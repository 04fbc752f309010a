package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("BIDMASTER_TEST_MODE") == "" {
			_ = os.Setenv("BIDMASTER_TEST_MODE", "1")
		}
	})
}
