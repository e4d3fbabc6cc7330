// vgpcodec trains, inspects, and applies VGP field codecs from the
// command line. It is a development aid for the library: the VGP file
// formats embed codec blobs in their own framing, while vgpcodec wraps a
// single encoded buffer in a minimal container so it can live in a file
// on its own.
package main

func main() {
	Execute()
}
