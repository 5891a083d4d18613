package colorspace

// yuyvToYV12 averages U and V across two adjacent rows and halves
// horizontal resolution, matching ConvertYUV422ToYUV420::convert_any.
// Output layout is Y-plane, then V-plane, then U-plane (YV12).
func yuyvToYV12(src Image) Image {
	w, h := src.Width, src.Height
	out := make([]byte, w*h+2*((w*h)/4))

	// Y: every second byte of the YUYV stream.
	yOut := out[:w*h]
	j := 0
	for i := 0; i < len(src.Data); i += 2 {
		yOut[j] = src.Data[i]
		j++
	}

	rowBytes := w * 2 // bytes per YUYV row
	copyPlane := func(dst []byte, base int) {
		k := 0
		for row := 0; row+1 < h; row += 2 {
			r0 := row * rowBytes
			r1 := r0 + rowBytes
			for col := base; col < rowBytes; col += 4 {
				dst[k] = byte((int(src.Data[r0+col]) + int(src.Data[r1+col])) / 2)
				k++
			}
		}
	}
	vOut := out[w*h : w*h+(w*h)/4]
	uOut := out[w*h+(w*h)/4:]
	// U at offset 1, V at offset 3 within each 4-byte YUYV group (Y U Y V).
	copyPlane(vOut, 3)
	copyPlane(uOut, 1)

	return Image{
		ImageHeader: NewHeader(w, h, YV12, src.Timestamp),
		Data:        out,
	}
}

func yuyvToRGBLike(src Image, target ColorSpace) Image {
	w, h := src.Width, src.Height
	out := make([]byte, w*h*3)
	to := 0
	// r,g,b channel index permutation: RGB888 = (0,1,2), BGR888 = (2,1,0).
	r, g, b := channelOrder(target)
	for i := 0; i+3 < len(src.Data); i += 4 {
		y1 := int(src.Data[i]) - 16
		u := int(src.Data[i+1]) - 128
		y2 := int(src.Data[i+2]) - 16
		v := int(src.Data[i+3]) - 128

		rr, gg, bb := yuvToRGB(y1, u, v)
		out[to+r], out[to+g], out[to+b] = rr, gg, bb
		to += 3
		rr, gg, bb = yuvToRGB(y2, u, v)
		out[to+r], out[to+g], out[to+b] = rr, gg, bb
		to += 3
	}
	return Image{ImageHeader: NewHeader(w, h, target, src.Timestamp), Data: out}
}

func yv12ToRGBLike(src Image, target ColorSpace) Image {
	w, h := src.Width, src.Height
	vPlane := src.Data[w*h : w*h+(w*h)/4]
	uPlane := src.Data[w*h+(w*h)/4:]
	uvOffset := w / 2

	out := make([]byte, w*h*3)
	r, g, b := channelOrder(target)
	for i := 0; i < h; i++ {
		rowUV := (i / 2) * uvOffset
		rowY := i * w
		for j := 0; j < w; j++ {
			uvIdx := rowUV + j/2
			y := int(src.Data[rowY+j]) - 16
			u := int(uPlane[uvIdx]) - 128
			v := int(vPlane[uvIdx]) - 128
			rr, gg, bb := yuvToRGB(y, u, v)
			to := (rowY + j) * 3
			out[to+r], out[to+g], out[to+b] = rr, gg, bb
		}
	}
	return Image{ImageHeader: NewHeader(w, h, target, src.Timestamp), Data: out}
}

// channelOrder returns the byte offsets within a 3-byte pixel at which to
// write r, g, b for the given target colorspace.
func channelOrder(target ColorSpace) (r, g, b int) {
	if target == BGR888 {
		return 2, 1, 0
	}
	return 0, 1, 2
}

func swapRGBOrder(target ColorSpace) func(Image) Image {
	return func(src Image) Image {
		out := make([]byte, len(src.Data))
		for i := 0; i+2 < len(src.Data); i += 3 {
			out[i], out[i+1], out[i+2] = src.Data[i+2], src.Data[i+1], src.Data[i]
		}
		return Image{ImageHeader: NewHeader(src.Width, src.Height, target, src.Timestamp), Data: out}
	}
}

func bgrToGray(src Image) Image {
	w, h := src.Width, src.Height
	out := make([]byte, w*h)
	for i, j := 0, 0; i+2 < len(src.Data); i, j = i+3, j+1 {
		b, g, r := int(src.Data[i]), int(src.Data[i+1]), int(src.Data[i+2])
		out[j] = byte((r*299 + g*587 + b*114) / 1000)
	}
	return Image{ImageHeader: NewHeader(w, h, GRAY, src.Timestamp), Data: out}
}

func grayToBGR(src Image) Image {
	w, h := src.Width, src.Height
	out := make([]byte, w*h*3)
	for i, j := 0, 0; i < len(src.Data); i, j = i+1, j+3 {
		v := src.Data[i]
		out[j], out[j+1], out[j+2] = v, v, v
	}
	return Image{ImageHeader: NewHeader(w, h, BGR888, src.Timestamp), Data: out}
}

// bgrToYV12 composes BGR->RGB->(treated as planar)->YV12 is not how the
// original models it; instead it derives Y/U/V directly per pixel and
// subsamples chroma 2x2, the inverse of yv12ToRGBLike.
func bgrToYV12(src Image) Image {
	w, h := src.Width, src.Height
	yPlane := make([]byte, w*h)
	// accumulate chroma in float-ish ints over each 2x2 block, then average.
	uSum := make([]int, (w/2)*(h/2))
	vSum := make([]int, (w/2)*(h/2))
	cnt := make([]int, (w/2)*(h/2))

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			off := (i*w + j) * 3
			b, g, r := int(src.Data[off]), int(src.Data[off+1]), int(src.Data[off+2])
			y := (299*r + 587*g + 114*b) / 1000
			u := 128 + (-169*r-331*g+500*b)/1000
			v := 128 + (500*r-419*g-81*b)/1000
			yPlane[i*w+j] = clamp(y)

			bi, bj := i/2, j/2
			if bi < h/2 && bj < w/2 {
				idx := bi*(w/2) + bj
				uSum[idx] += u
				vSum[idx] += v
				cnt[idx]++
			}
		}
	}
	out := make([]byte, w*h+2*((w*h)/4))
	copy(out, yPlane)
	vOut := out[w*h : w*h+(w*h)/4]
	uOut := out[w*h+(w*h)/4:]
	for i := range cnt {
		if cnt[i] == 0 {
			continue
		}
		vOut[i] = clamp(vSum[i] / cnt[i])
		uOut[i] = clamp(uSum[i] / cnt[i])
	}
	return Image{ImageHeader: NewHeader(w, h, YV12, src.Timestamp), Data: out}
}
