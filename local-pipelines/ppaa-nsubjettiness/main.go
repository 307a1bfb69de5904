package main

import "github.com/kiteco/jetml/kite-golib/cmdline"

func main() {
	cmdline.MustDispatch(processCmd, plotCmd)
}
