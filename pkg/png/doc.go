// Package png demultiplexes APNG streams into standalone PNG frames and
// multiplexes PNG frames into APNG streams.
//
// Both directions work on the chunk layer only: image data is copied between
// IDAT and fdAT chunks without being decompressed. A Reader turns every frame
// of an animation into a complete PNG stream that repeats the IHDR and
// ancillary chunks of the source. A Writer takes the IHDR and ancillary chunks
// of the first frame it receives and emits acTL, fcTL and fdAT chunks for the
// others.
package png
