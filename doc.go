/*
Package spotlight dims an image, or a measured page, everywhere except a set
of highlighted regions, the way a guided tour puts the focus on one element.

The heavy lifting is done by the rectset package, which splits a container
rectangle minus any number of hole rectangles into non-overlapping panels.
This package measures the container and the holes through a Measurer, a
layout document or a face detector for instance, and paints the panels over
the image.

The package provides a command line interface, supporting various flags for
the measuring and the rendering of the mask. To check the supported commands type:

	$ spotlight --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/spotlight"
	)

	func main() {
		layout, err := spotlight.LoadLayout("page.yaml")
		if err != nil {
			return
		}
		p := &spotlight.Processor{
			Layout:    layout,
			Container: "document",
			Holes:     []string{"#signup"},
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error masking image: %s", err.Error())
		}
	}
*/
package spotlight
