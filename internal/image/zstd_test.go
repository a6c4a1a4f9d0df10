package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestZstd_RoundTrip(t *testing.T) {
	src := gradientRaster(64, 48)

	var out bytes.Buffer
	if err := src.EncodeZstd(&out); err != nil {
		t.Fatalf("EncodeZstd() error = %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte(magicZstdPlane)) {
		t.Fatalf("output does not start with %q", magicZstdPlane)
	}

	got, err := DecodeZstd(&out)
	if err != nil {
		t.Fatalf("DecodeZstd() error = %v", err)
	}
	if !got.Equal(src) {
		t.Error("zstd round trip changed samples")
	}
}

func TestZstd_Compresses(t *testing.T) {
	src, _ := NewRaster(256, 256)

	var out bytes.Buffer
	if err := src.EncodeZstd(&out); err != nil {
		t.Fatalf("EncodeZstd() error = %v", err)
	}
	if out.Len() >= src.Len()/10 {
		t.Errorf("encoded size %d for a flat plane of %d samples", out.Len(), src.Len())
	}
}

func TestDecodeZstd_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmptyData},
		{"bad magic", []byte("XXXX\x00\x00\x00\x01\x00\x00\x00\x01"), ErrInvalidMagic},
		{"huge", []byte("CSZ1\xff\xff\xff\xff\x00\x00\x00\x01"), ErrInvalidDimensions},
		{"too many pixels", planeWithHeader(t, maxPlaneSide, maxPlaneSide, []byte{1}), ErrInvalidDimensions},
		{"content size mismatch", planeWithHeader(t, 4, 4, []byte{1, 2, 3}), ErrDataTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeZstd(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeZstd() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeZstd_Truncated(t *testing.T) {
	var out bytes.Buffer
	if err := gradientRaster(8, 8).EncodeZstd(&out); err != nil {
		t.Fatalf("EncodeZstd() error = %v", err)
	}
	// Keep the header and only the first bytes of the zstd frame.
	data := out.Bytes()[:len(magicZstdPlane)+8+6]

	if _, err := DecodeZstd(bytes.NewReader(data)); err == nil {
		t.Error("DecodeZstd(truncated) succeeded, want error")
	}
}

// planeWithHeader builds a zstd plane container whose header claims w x h
// but whose frame holds the given samples.
func planeWithHeader(t testing.TB, w, h uint32, samples []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()

	out := []byte(magicZstdPlane)
	out = binary.BigEndian.AppendUint32(out, w)
	out = binary.BigEndian.AppendUint32(out, h)
	return enc.EncodeAll(samples, out)
}

func TestDecodeZstd_CorruptHeaderDoesNotAllocatePlane(t *testing.T) {
	// 8192x8192 is within the limits, but the frame holds one sample.
	data := planeWithHeader(t, 8192, 8192, []byte{7})

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	_, err := DecodeZstd(bytes.NewReader(data))

	runtime.ReadMemStats(&after)
	if !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("DecodeZstd() error = %v, want ErrDataTooSmall", err)
	}
	if grew := after.TotalAlloc - before.TotalAlloc; grew > 16<<20 {
		t.Errorf("DecodeZstd allocated %d MiB for a %d-byte input", grew>>20, len(data))
	}
}
