package unindex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"
)

// NvimReloader keeps a running Neovim in sync with renames and rewrites
// already flushed to disk. It only attaches to an existing instance.
type NvimReloader struct {
	v *nvim.Nvim
}

func NewNvimReloader() (*NvimReloader, error) {
	addr := os.Getenv("NVIM")
	if addr == "" {
		addr = os.Getenv("NVIM_LISTEN_ADDRESS")
	}
	if addr == "" {
		return nil, fmt.Errorf("no running nvim instance ($NVIM not set)")
	}

	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, err
	}
	return &NvimReloader{v: v}, nil
}

func (m *NvimReloader) Close() {
	if m.v != nil {
		m.v.Close()
	}
}

// ReloadFiles re-edits each path so open buffers pick up the on-disk
// state, then checktime sweeps everything else.
func (m *NvimReloader) ReloadFiles(paths []string) (failed []string) {
	for _, p := range paths {
		abs, err := filepath.Abs(filepath.FromSlash(p))
		if err != nil {
			failed = append(failed, p)
			continue
		}
		b := m.v.NewBatch()
		b.Command(fmt.Sprintf("edit! %s", abs))
		if b.Execute() != nil {
			failed = append(failed, p)
		}
	}
	m.v.Command("checktime")
	return failed
}
