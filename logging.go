package tubepathfinder

import (
	"io"
	"log"
	"os"
)

// InitLogging sends the standard logger to w, or stdout when w is nil.
func InitLogging(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
