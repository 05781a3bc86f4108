// Package main implements the dicodec command, which loads the DICOM codecs
// available to the process and reports them.
//
//	dicodec list
//	dicodec --path /opt/dicodec/plugins --pattern "*.so" list
//	dicodec lookup --ts 1.2.840.10008.1.2.1.99
//	dicodec --config dicodec.yml serve --addr :9100
package main

import (
	"fmt"
	"os"

	// Codecs of the process image.
	_ "github.com/sunxiaotianmg/fo-dicom.Codecs/codec/deflate"
	_ "github.com/sunxiaotianmg/fo-dicom.Codecs/codec/uncompressed"
)

func main() {
	err := newApp(os.Stdout, nil).Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
