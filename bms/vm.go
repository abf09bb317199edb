package bms

import (
	"container/heap"
	"fmt"

	"github.com/go-audio/audio"
	"go.uber.org/zap"
)

// PmapChainMode resolves an ambiguity the distilled sequence format leaves
// open: what happens to a track's bank/program mapping when a second
// pmap-chain instruction arrives before the first one's voices have
// finished releasing.
type PmapChainMode int

const (
	// PmapChainReset replaces the active mapping outright; any voices
	// already playing under the old mapping keep playing (and releasing)
	// unaffected, since Voice holds its own Sample pointer rather than a
	// live reference to the channel's current program.
	PmapChainReset PmapChainMode = iota
	// PmapChainQueue is accepted and stored, but the VM never consults
	// PmapChainMode: opSetBank replaces the mapping immediately under
	// either mode, so this value behaves exactly like PmapChainReset.
	PmapChainQueue
)

// VM schedules and mixes every running Track into a single interleaved
// output buffer. Tracks are kept in a min-heap ordered by the absolute
// tick at which they next want to run, so advancing the VM by one audio
// frame only has to wake the tracks whose wait has expired.
type VM struct {
	OutputRate float64
	Channels   int

	PmapChainMode PmapChainMode

	tracks trackHeap
	tick   uint64

	samples map[sampleKey]*Sample

	log *zap.Logger
}

type sampleKey struct {
	bank    uint8
	program uint8
}

// NewVM creates a VM rendering at outputRate samples/sec with the given
// channel count (1 = mono, 2 = stereo).
func NewVM(outputRate float64, channels int, log *zap.Logger) *VM {
	if log == nil {
		log = zap.NewNop()
	}
	return &VM{
		OutputRate: outputRate,
		Channels:   channels,
		samples:    map[sampleKey]*Sample{},
		log:        log,
	}
}

// RegisterSample binds a Sample to a (bank, program) pair so a later
// note-on under that program resolves to it.
func (vm *VM) RegisterSample(bank, program uint8, sample *Sample) {
	vm.samples[sampleKey{bank, program}] = sample
}

func (vm *VM) lookupSample(bank, program uint8) *Sample {
	return vm.samples[sampleKey{bank, program}]
}

// AddTrack starts scheduling t, waking it immediately on the next Pulse.
func (vm *VM) AddTrack(t *Track) {
	heap.Push(&vm.tracks, &trackQueueItem{track: t, wakeAt: vm.tick})
	vm.log.Debug("bms track added", zap.Int("active_tracks", vm.tracks.Len()))
}

// Pulse advances the VM by exactly one audio frame's worth of ticks: it
// runs every track whose wait has expired, mixes every active voice, and
// returns the resulting frame as a go-audio IntBuffer holding Channels
// interleaved PCM samples, one per channel, for this one output frame.
func (vm *VM) Pulse() (*audio.IntBuffer, error) {
	for vm.tracks.Len() > 0 && vm.tracks[0].wakeAt <= vm.tick {
		item := heap.Pop(&vm.tracks).(*trackQueueItem)
		t := item.track
		waitTicks, err := vm.runTrack(t)
		if err != nil {
			return nil, fmt.Errorf("bms: %w", err)
		}
		if t.done {
			vm.log.Debug("bms track finished")
			continue
		}
		item.wakeAt = vm.tick + uint64(waitTicks)*uint64(max1(t.TicksPerFrame))
		heap.Push(&vm.tracks, item)
	}

	mix := make([]int, vm.Channels)
	for _, item := range vm.tracks {
		t := item.track
		t.Channel.Step()
		for note, v := range t.Voices {
			sample := v.Next()
			scaled := sample * t.Channel.Volume.Current / 127
			pan := t.Channel.Pan.Current // 0-127, 64 = center
			if vm.Channels == 2 {
				left := scaled * (127 - pan) / 127
				right := scaled * pan / 127
				mix[0] += int(left)
				mix[1] += int(right)
			} else {
				mix[0] += int(scaled)
			}
			if v.Done() {
				delete(t.Voices, note)
			}
		}
	}

	vm.tick++

	return &audio.IntBuffer{
		Format: &audio.Format{NumChannels: vm.Channels, SampleRate: int(vm.OutputRate)},
		Data:   mix,
	}, nil
}

// ActiveTrackCount reports how many tracks are still scheduled.
func (vm *VM) ActiveTrackCount() int {
	return vm.tracks.Len()
}

func max1(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}

type trackQueueItem struct {
	track  *Track
	wakeAt uint64
	index  int
}

type trackHeap []*trackQueueItem

func (h trackHeap) Len() int            { return len(h) }
func (h trackHeap) Less(i, j int) bool  { return h[i].wakeAt < h[j].wakeAt }
func (h trackHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *trackHeap) Push(x any) {
	item := x.(*trackQueueItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *trackHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
