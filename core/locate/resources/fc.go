package resources

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/font"
	xfont "golang.org/x/image/font"
)

// FontConfig searches locally installed fonts using the fontconfig system
// (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured in the application configuration by
// setting key `fontconfig` to the absolute path of the 'fc-list' binary.
//
// The output of fc-list is copied to the user's cache directory once.
// Subsequent uses read the cached entries.
//
// We call the binary instead of using the C library because of possible version
// issues. If fontconfig is not configured, FontConfig silently finds nothing.
type FontConfig struct {
	conf  schuko.Configuration
	once  sync.Once
	descs []font.Descriptor
	err   error // problem with a configured fontconfig
}

// NewFontConfig creates a fontconfig font finder. The font list is loaded
// lazily on first use.
func NewFontConfig(conf schuko.Configuration) *FontConfig {
	return &FontConfig{conf: conf}
}

// Find returns the closest match for a font pattern, style and weight, or
// an empty descriptor and variant.
func (fc *FontConfig) Find(pattern string, style xfont.Style, weight xfont.Weight) (
	desc font.Descriptor, variant string) {
	//
	fc.load()
	if len(fc.descs) == 0 {
		return
	}
	var confidence font.MatchConfidence
	desc, variant, confidence = font.ClosestMatch(fc.descs, pattern, style, weight)
	tracer().Debugf("closest fontconfig match confidence for %s|%s= %d", desc.Family, variant, confidence)
	if confidence > font.LowConfidence {
		return
	}
	return font.Descriptor{}, ""
}

// Err returns the problem encountered when loading the fontconfig font list.
// An unconfigured fontconfig is not an error.
func (fc *FontConfig) Err() error {
	fc.load()
	return fc.err
}

func (fc *FontConfig) load() {
	fc.once.Do(func() {
		fc.descs, fc.err = loadFontConfigList(fc.conf)
		if fc.err != nil {
			tracer().Errorf(core.UserMessage(fc.err))
		}
		tracer().Infof("loaded fontconfig list with %d entries", len(fc.descs))
	})
}

func findFontConfigBinary(conf schuko.Configuration) (string, error) {
	path := conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		return "", core.Error(core.EMISSING, "fontconfig not configured")
	}
	return path, nil
}

// cacheFontConfigList returns the path of the cached fc-list output. It is
// "" if fontconfig is not configured.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, error) {
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", nil
	}
	if !path.IsAbs(fcpath) {
		return "", core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
	}
	cachedir, err := CacheDirPath(conf)
	if err != nil {
		return "", err
	}
	fcListFilename := path.Join(cachedir, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil && !update {
		return fcListFilename, nil
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		defer fontlistFile.Close()
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
	}
	if err != nil {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
	}
	return fcListFilename, nil
}

func loadFontConfigList(conf schuko.Configuration) ([]font.Descriptor, error) {
	fclist, err := cacheFontConfigList(conf, false)
	if fclist == "" {
		return nil, err
	}
	fc, err := os.Open(fclist)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
	}
	defer fc.Close()
	descs, err := parseFontConfigList(fc)
	if err != nil {
		return descs, core.WrapError(err, core.EINVALID,
			"cannot read fontconfig font list %s", fclist)
	}
	return descs, nil
}

// parseFontConfigList reads lines of fc-list output, which look like
//
//    /usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
//
func parseFontConfigList(r io.Reader) ([]font.Descriptor, error) {
	var descs []font.Descriptor
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		fontname := strings.TrimSpace(fields[1])
		fontname = strings.TrimPrefix(fontname, ".")
		if i := strings.IndexByte(fontname, ','); i > 0 { // localized alternatives
			fontname = fontname[:i]
		}
		if strings.HasSuffix(fontpath, ".ttc") {
			ttc++
			continue
		}
		desc := font.Descriptor{
			Family:   fontname,
			Path:     fontpath,
			Variants: []string{fontConfigVariant(strings.ToLower(fields[2]))},
		}
		descs = append(descs, desc)
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return descs, scanner.Err()
}

func fontConfigVariant(style string) string {
	bold := strings.Contains(style, "bold") || strings.Contains(style, "black")
	italic := strings.Contains(style, "italic") || strings.Contains(style, "oblique")
	switch {
	case bold && italic:
		return "bolditalic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	case strings.Contains(style, "light"):
		return "light"
	}
	return "regular"
}
