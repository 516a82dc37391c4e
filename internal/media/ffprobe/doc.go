// Package ffprobe reads media durations and stream types through the ffprobe
// binary. The fade step uses Summarize to place the fade-out and to
// confirm a video fade has a video stream to work on.
package ffprobe
