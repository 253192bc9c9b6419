package main

import (
	"fmt"
	"io"
	"os"

	"github.com/locforge/catdiff/encode"
	"github.com/locforge/catdiff/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Compact bool `cli:"name=compact desc='compact one-line output'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat reports an explicitly requested input format. When nothing
// was requested file extensions decide.
func (cfg *MainConfig) inFormat() (format.Format, bool) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, true
	}
	switch {
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return format.JSONFormat, false
}

// outFormat reports an explicitly requested output format. When
// nothing was requested export keeps a document's own format.
func (cfg *MainConfig) outFormat() (format.Format, bool) {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat, true
	}
	switch {
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return format.JSONFormat, false
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeCompact(cfg.Compact),
	}
	if f, ok := cfg.outFormat(); ok {
		res = append(res, encode.EncodeFormat(f))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor decides coloring: -color forces it on, -color=false forces
// it off, otherwise only terminals get color.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	// it would be nicer if cli supported
	// pointers to builtin types as well...
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type CompareConfig struct {
	*MainConfig

	Filter  string `cli:"name=filter desc='expression selecting records'"`
	Inline  bool   `cli:"name=inline desc='character deltas for changed strings'"`
	Patch   bool   `cli:"name=patch desc='emit a JSON Patch instead of records'"`
	Summary bool   `cli:"name=summary desc='print only the status summary'"`

	Compare *cli.Command
}

type TreeConfig struct {
	*MainConfig

	Tree *cli.Command
}

type CountConfig struct {
	*MainConfig

	Limit int `cli:"name=limit desc='fail when a document has more than this many keys'"`

	Count *cli.Command
}

type ExportConfig struct {
	*MainConfig

	Side       string `cli:"name=side desc='catalog side: left or right' default=left"`
	MergePatch bool   `cli:"name=merge-patch desc='emit a merge patch of the edits instead'"`

	sets []editArg

	Export *cli.Command
}
