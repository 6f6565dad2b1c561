package render

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultShader draws every vertex at its position with a uniform color.
// It is in glgl's combined format with "#shader vertex" and
// "#shader fragment" sections. The vertex shader reads a vec2 at location 0
// and the fragment shader a vec4 uniform named "color".
//
//go:embed shaders/flat.glsl
var DefaultShader []byte

// MaxShaderSize is the largest shader source ReadShader accepts.
const MaxShaderSize = 64 << 10

var ErrShaderTooLarge = errors.New("shader source exceeds 64KiB")

// ReadShader reads a combined shader source file.
func ReadShader(path string) ([]byte, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	src, err := io.ReadAll(io.LimitReader(fp, MaxShaderSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading shader %s: %w", path, err)
	}
	if len(src) > MaxShaderSize {
		return nil, fmt.Errorf("%s: %w", path, ErrShaderTooLarge)
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("%s: empty shader source", path)
	}
	return src, nil
}
