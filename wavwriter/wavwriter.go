// This file is part of tcusim.
//
// tcusim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tcusim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tcusim.  If not, see <https://www.gnu.org/licenses/>.


package wavwriter

import (
	"os"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DefaultResolution is the length of time covered by a single sample.
const DefaultResolution = vtime.Microsecond

// MaxSamples is the maximum number of samples per line. Transitions after
// this point are not recorded.
const MaxSamples = 1 << 24

// sample values for low and high levels
const (
	levelLow  = -0x4000
	levelHigh = 0x4000
	bitDepth  = 16
)

// WavWriter implements the irq.Sink interface.
type WavWriter struct {
	filename string
	clk      vtime.Clock

	// the length of time covered by each sample. must not be changed after
	// the first call to SetIRQ()
	Resolution vtime.Time

	levels []bool

	// samples for all lines interleaved
	buffer []int

	// number of frames in the buffer. a frame is one sample for every line
	frames int

	truncated bool
}

// New is the preferred method of initialisation for the WavWriter type. The
// number of lines is fixed for the life of the WavWriter.
func New(filename string, clk vtime.Clock, lines int) (*WavWriter, error) {
	if lines <= 0 {
		return nil, curated.Errorf("wavwriter: must record at least one line")
	}
	if clk == nil {
		return nil, curated.Errorf("wavwriter: a clock is required")
	}

	return &WavWriter{
		filename:   filename,
		clk:        clk,
		Resolution: DefaultResolution,
		levels:     make([]bool, lines),
	}, nil
}

// SampleRate returns the number of samples per second implied by the
// Resolution.
func (aw *WavWriter) SampleRate() int {
	if aw.Resolution <= 0 {
		return int(vtime.Second / DefaultResolution)
	}
	return int(vtime.Second / aw.Resolution)
}

// Frames returns the number of samples per line recorded so far.
func (aw *WavWriter) Frames() int {
	return aw.frames
}

// fill the buffer with the current levels up to the specified time.
func (aw *WavWriter) fill(now vtime.Time) {
	res := aw.Resolution
	if res <= 0 {
		res = DefaultResolution
	}

	end := int(now / res)
	if end > MaxSamples {
		end = MaxSamples
		if !aw.truncated {
			aw.truncated = true
			logger.Logf(logger.Allow, "wavwriter", "recording truncated at %d samples", MaxSamples)
		}
	}

	for ; aw.frames < end; aw.frames++ {
		for _, l := range aw.levels {
			if l {
				aw.buffer = append(aw.buffer, levelHigh)
			} else {
				aw.buffer = append(aw.buffer, levelLow)
			}
		}
	}
}

// SetIRQ implements the irq.Sink interface. Lines outside the range given to
// New() are ignored.
func (aw *WavWriter) SetIRQ(line int, level bool) {
	if line < 0 || line >= len(aw.levels) {
		return
	}
	aw.fill(aw.clk.Now())
	aw.levels[line] = level
}

// Close fills the recording up to the current time and writes it to disk.
func (aw *WavWriter) Close() (rerr error) {
	aw.fill(aw.clk.Now())

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.SampleRate(), bitDepth, len(aw.levels), 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: len(aw.levels),
			SampleRate:  aw.SampleRate(),
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", aw.frames, aw.filename)

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
