package retroglue

import (
	"github.com/retroglue/retroglue/types"
)

// Runtime bundles the four frame-driving callbacks for the duration of one
// retro_run call. It is rebuilt from the bridge's callback slots on every
// run because the host is free to swap callbacks between frames; it must
// never be stored across calls.
type Runtime struct {
	audioSample      AudioSampleCallback
	audioSampleBatch AudioSampleBatchCallback
	inputState       InputStateCallback
	videoRefresh     VideoRefreshCallback
}

// NewRuntime builds a Runtime from the four callbacks. All four must be
// present: a frontend that starts running frames without having installed
// them is out of contract, and the bridge treats that as fatal.
func NewRuntime(
	audioSample AudioSampleCallback,
	audioSampleBatch AudioSampleBatchCallback,
	inputState InputStateCallback,
	videoRefresh VideoRefreshCallback,
) (*Runtime, error) {
	switch {
	case audioSample == nil:
		return nil, &types.ProtocolViolation{Entry: "retro_run", Reason: "audio_sample callback was never set"}
	case audioSampleBatch == nil:
		return nil, &types.ProtocolViolation{Entry: "retro_run", Reason: "audio_sample_batch callback was never set"}
	case inputState == nil:
		return nil, &types.ProtocolViolation{Entry: "retro_run", Reason: "input_state callback was never set"}
	case videoRefresh == nil:
		return nil, &types.ProtocolViolation{Entry: "retro_run", Reason: "video_refresh callback was never set"}
	}
	return &Runtime{
		audioSample:      audioSample,
		audioSampleBatch: audioSampleBatch,
		inputState:       inputState,
		videoRefresh:     videoRefresh,
	}, nil
}

// UploadAudioFrame sends interleaved stereo samples to the frontend and
// returns the number of frames consumed. An odd-length buffer is truncated:
// the trailing orphan sample is dropped rather than smeared into the next
// frame, so the result times two never exceeds len(samples).
func (r *Runtime) UploadAudioFrame(samples []int16) int {
	frames := len(samples) / 2
	if frames == 0 {
		return 0
	}
	return r.audioSampleBatch(samples[:frames*2])
}

// UploadAudioSample sends a single stereo frame to the frontend.
func (r *Runtime) UploadAudioSample(left, right int16) {
	r.audioSample(left, right)
}

// UploadVideoFrame sends one video frame to the frontend. The frame must be
// laid out in the pixel format negotiated at load time; pitch is the byte
// length of one row, which may exceed width times the pixel size. No
// conversion happens here.
func (r *Runtime) UploadVideoFrame(frame []byte, width, height uint32, pitch int) {
	r.videoRefresh(frame, width, height, pitch)
}

// IsJoypadButtonPressed queries the state of one RetroPad button.
func (r *Runtime) IsJoypadButtonPressed(port types.DevicePort, btn types.JoypadButton) bool {
	return r.inputState(uint32(port), uint32(types.DeviceJoypad), 0, uint32(btn)) != 0
}
