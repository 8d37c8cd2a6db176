package texture

// blockIterator walks an image in the block order the GPU expects: the
// image is split into a grid of bw by bh blocks visited row-major, and
// each block is itself visited row-major. One instance is good for a
// single pass.
//
// After each call to next the blocks and col fields describe the pixel
// just returned: blocks is the number of fully completed blocks before it
// (equivalently the index of the block containing it) and col is its
// column within the block. Formats that pack two sub-byte samples per
// byte key off the column parity.
type blockIterator struct {
	width, height int
	bw, bh        int

	xBlock, yBlock int
	x, y           int
	completed      int

	blocks int
	col    int
}

func newBlockIterator(width, height, bw, bh int) *blockIterator {
	return &blockIterator{
		width:  width,
		height: height,
		bw:     bw,
		bh:     bh,
	}
}

// next returns the coordinates of the next pixel, or ok == false once
// every block has been visited.
func (it *blockIterator) next() (int, int, bool) {
	if it.yBlock >= it.height {
		return 0, 0, false
	}

	px, py := it.xBlock+it.x, it.yBlock+it.y
	it.blocks, it.col = it.completed, it.x

	it.x++
	if it.x == it.bw {
		it.x = 0
		it.y++
		if it.y == it.bh {
			it.y = 0
			it.completed++
			it.xBlock += it.bw
			if it.xBlock >= it.width {
				it.xBlock = 0
				it.yBlock += it.bh
			}
		}
	}

	return px, py, true
}

// dxtBlockIterator yields the origin of each 4x4 sub-block in the order
// the DXT1 payload stores them: 8x8 tiles visited left to right then top
// to bottom, with the four 4x4 sub-blocks of each tile visited row-major
// (top-left, top-right, bottom-left, bottom-right). This two-level order
// is part of the wire format.
type dxtBlockIterator struct {
	width, height int

	x, y           int
	xBlock, yBlock int
}

func newDxtBlockIterator(width, height int) *dxtBlockIterator {
	return &dxtBlockIterator{
		width:  width,
		height: height,
	}
}

func (it *dxtBlockIterator) next() (int, int, bool) {
	if it.y >= it.height {
		return 0, 0, false
	}

	px, py := it.x+it.xBlock, it.y+it.yBlock

	it.xBlock += 4
	if it.xBlock == 8 {
		it.xBlock = 0
		it.yBlock += 4
		if it.yBlock == 8 {
			it.yBlock = 0
			it.x += 8
			if it.x >= it.width {
				it.x = 0
				it.y += 8
			}
		}
	}

	return px, py, true
}
