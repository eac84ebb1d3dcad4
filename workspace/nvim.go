package workspace

import (
	"os"

	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"
)

// activeFileFromNvim asks the Neovim instance named by $NVIM for the file in
// its current buffer. Any failure degrades to "no active document".
func activeFileFromNvim(log *logrus.Entry) string {
	addr := os.Getenv("NVIM")
	if addr == "" {
		return ""
	}

	v, err := nvim.Dial(addr)
	if err != nil {
		log.WithError(err).Debug("Could not connect to Neovim instance")
		return ""
	}
	defer v.Close()

	buf, err := v.CurrentBuffer()
	if err != nil {
		log.WithError(err).Debug("Could not query current Neovim buffer")
		return ""
	}
	name, err := v.BufferName(buf)
	if err != nil {
		log.WithError(err).Debug("Could not query Neovim buffer name")
		return ""
	}
	return name
}
