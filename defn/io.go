// Copyright 2023 KoKoKotlin
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package defn

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"sigs.k8s.io/yaml"
)

// Format is the encoding of a definition.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// just pick an upper limit to prevent DoS
const maxDefSize = 1024 * 1024

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

const zstdExt = ".zst"

// FormatOf determines the format of a definition
// file from its extension. A trailing ".zst"
// indicates zstd compression.
func FormatOf(path string) (f Format, compressed bool, err error) {
	if strings.HasSuffix(path, zstdExt) {
		compressed = true
		path = strings.TrimSuffix(path, zstdExt)
	}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		return JSON, compressed, nil
	case ".yaml", ".yml":
		return YAML, compressed, nil
	default:
		return 0, false, fmt.Errorf("cannot determine definition format of %q", path)
	}
}

// Decode decodes a definition from buf, which
// may hold JSON or YAML. Unknown fields are rejected.
func Decode(buf []byte) (*Definition, error) {
	d := new(Definition)
	if err := yaml.UnmarshalStrict(buf, d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return d, nil
}

// Encode encodes d in the format f.
func Encode(d *Definition, f Format) ([]byte, error) {
	switch f {
	case JSON:
		buf, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(buf, '\n'), nil
	case YAML:
		return yaml.Marshal(d)
	}
	return nil, fmt.Errorf("cannot encode definition as %s", f)
}

// Read decodes a definition from src.
// Zstd-compressed input is detected and
// decompressed transparently.
func Read(src io.Reader) (*Definition, error) {
	br := bufio.NewReader(src)
	var in io.Reader = br
	if magic, _ := br.Peek(len(zstdMagic)); bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		in = dec
	}
	buf, err := io.ReadAll(io.LimitReader(in, maxDefSize+1))
	if err != nil {
		return nil, err
	}
	if len(buf) > maxDefSize {
		return nil, fmt.Errorf("definition beyond size limit %d", maxDefSize)
	}
	return Decode(buf)
}

// ReadFile reads the definition stored at path.
func ReadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxDefSize {
		return nil, fmt.Errorf("definition of size %d beyond limit %d", info.Size(), maxDefSize)
	}
	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteFile writes d to path in the format
// indicated by the extension of path.
func WriteFile(path string, d *Definition) error {
	f, compressed, err := FormatOf(path)
	if err != nil {
		return err
	}
	buf, err := Encode(d, f)
	if err != nil {
		return err
	}
	if compressed {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		buf = enc.EncodeAll(buf, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf, 0644)
}
