package colorspace

import "tinkervision.dev/tv/result"

// studio-RGB fixed-point coefficients, ported verbatim from the original
// YUVToRGB::convert kernel (src/camera/convert.cc), scaled by 1000 there and
// folded into a single normalizer here.
const (
	coeffRY = 298082
	coeffRU = 0
	coeffRV = 458942

	coeffGY = 298082
	coeffGU = -54592
	coeffGV = -136425

	coeffBY = 298082
	coeffBU = 540775
	coeffBV = 0

	normalizer = 256000
)

func clamp(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// yuvToRGB converts one (y, u, v) triple (already offset by -16/-128) to an
// (r, g, b) triple using the studio-RGB matrix.
func yuvToRGB(y, u, v int) (r, g, b byte) {
	r = clamp((coeffRY*y + coeffRU*u + coeffRV*v) / normalizer)
	g = clamp((coeffGY*y + coeffGU*u + coeffGV*v) / normalizer)
	b = clamp((coeffBY*y + coeffBU*u + coeffBV*v) / normalizer)
	return
}

// edge is one one-step conversion in the colorspace graph.
type edge struct {
	from, to ColorSpace
	convert  func(src Image) Image
}

// edges enumerates the fixed conversion table. Each entry is a
// single-step, lazily-invoked conversion function.
var edges = []edge{
	{YUYV, YV12, yuyvToYV12},
	{YUYV, RGB888, func(s Image) Image { return yuyvToRGBLike(s, RGB888) }},
	{YUYV, BGR888, func(s Image) Image { return yuyvToRGBLike(s, BGR888) }},
	{YV12, RGB888, func(s Image) Image { return yv12ToRGBLike(s, RGB888) }},
	{YV12, BGR888, func(s Image) Image { return yv12ToRGBLike(s, BGR888) }},
	{BGR888, RGB888, swapRGBOrder(RGB888)},
	{RGB888, BGR888, swapRGBOrder(BGR888)},
	{BGR888, GRAY, bgrToGray},
	{GRAY, BGR888, grayToBGR},
	{BGR888, YV12, bgrToYV12},
}

// Converter finds a conversion path between two colorspaces and produces
// target frames from a source frame on demand. It owns none of the frames
// it returns; callers (FrameBus) own and cache the results.
type Converter struct{}

// NewConverter returns a stateless Converter; conversions are pure
// functions of the source frame so no per-instance state is required.
func NewConverter() *Converter { return &Converter{} }

// Convert resolves source to the to colorspace: identity short-circuit,
// then shortest-path BFS over the fixed edge table, then a lazily
// instantiated chain of one-step converters.
func (c *Converter) Convert(to ColorSpace, source Image) (Image, error) {
	if source.ColorSpace == to {
		return source, nil
	}
	path := shortestPath(source.ColorSpace, to)
	if path == nil {
		return Image{}, result.New(result.UnsupportedConversion)
	}
	cur := source
	for _, step := range path {
		cur = step.convert(cur)
	}
	return cur, nil
}

// shortestPath runs a breadth-first search over edges from from to to and
// returns the ordered chain of edges to traverse, or nil if no path exists.
func shortestPath(from, to ColorSpace) []edge {
	type node struct {
		cs   ColorSpace
		path []edge
	}
	visited := map[ColorSpace]bool{from: true}
	queue := []node{{cs: from}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.cs == to {
			return cur.path
		}
		for _, e := range edges {
			if e.from != cur.cs || visited[e.to] {
				continue
			}
			visited[e.to] = true
			next := append(append([]edge{}, cur.path...), e)
			if e.to == to {
				return next
			}
			queue = append(queue, node{cs: e.to, path: next})
		}
	}
	return nil
}
