package huffman

// acRow is one variable-length AC code (without its trailing sign bit) and
// the (run, level) pair it stands for in each dialect.
type acRow struct {
	bits      string
	run       int
	level     int
	lainRun   int
	lainLevel int
}

// acRows lists the 111 AC codes in catalog order. The standard assignment is
// MPEG-1 Table B.14 (dct_coeff_next); the Lain assignment reuses the same bit
// patterns with its own pairs.
var acRows = [acCodeCount]acRow{
	{"11", 0, 1, 0, 1},
	{"011", 1, 1, 0, 2},
	{"0100", 0, 2, 0, 3},
	{"0101", 2, 1, 1, 1},
	{"00101", 0, 3, 0, 4},
	{"00110", 4, 1, 1, 2},
	{"00111", 3, 1, 0, 5},
	{"000100", 7, 1, 1, 3},
	{"000101", 6, 1, 0, 6},
	{"000110", 1, 2, 2, 1},
	{"000111", 5, 1, 1, 4},
	{"0000100", 2, 2, 0, 7},
	{"0000101", 9, 1, 2, 2},
	{"0000110", 0, 4, 1, 5},
	{"0000111", 8, 1, 0, 8},
	{"00100000", 13, 1, 2, 3},
	{"00100001", 0, 6, 1, 6},
	{"00100010", 12, 1, 3, 1},
	{"00100011", 11, 1, 0, 9},
	{"00100100", 3, 2, 2, 4},
	{"00100101", 1, 3, 1, 7},
	{"00100110", 0, 5, 3, 2},
	{"00100111", 10, 1, 0, 10},
	{"0000001000", 16, 1, 2, 5},
	{"0000001001", 5, 2, 1, 8},
	{"0000001010", 0, 7, 3, 3},
	{"0000001011", 2, 3, 0, 11},
	{"0000001100", 1, 4, 4, 1},
	{"0000001101", 15, 1, 1, 9},
	{"0000001110", 14, 1, 3, 4},
	{"0000001111", 4, 2, 0, 12},
	{"000000010000", 0, 11, 4, 2},
	{"000000010001", 8, 2, 1, 10},
	{"000000010010", 4, 3, 0, 13},
	{"000000010011", 0, 10, 4, 3},
	{"000000010100", 2, 4, 1, 11},
	{"000000010101", 7, 2, 5, 1},
	{"000000010110", 21, 1, 0, 14},
	{"000000010111", 20, 1, 1, 12},
	{"000000011000", 0, 9, 5, 2},
	{"000000011001", 19, 1, 0, 15},
	{"000000011010", 18, 1, 1, 13},
	{"000000011011", 1, 5, 5, 3},
	{"000000011100", 3, 3, 0, 16},
	{"000000011101", 0, 8, 6, 1},
	{"000000011110", 6, 2, 1, 14},
	{"000000011111", 17, 1, 0, 17},
	{"0000000010000", 10, 2, 6, 2},
	{"0000000010001", 9, 2, 1, 15},
	{"0000000010010", 5, 3, 0, 18},
	{"0000000010011", 3, 4, 6, 3},
	{"0000000010100", 2, 5, 1, 16},
	{"0000000010101", 1, 7, 7, 1},
	{"0000000010110", 1, 6, 0, 19},
	{"0000000010111", 0, 15, 1, 17},
	{"0000000011000", 0, 14, 7, 2},
	{"0000000011001", 0, 13, 0, 20},
	{"0000000011010", 0, 12, 1, 18},
	{"0000000011011", 26, 1, 0, 21},
	{"0000000011100", 25, 1, 8, 1},
	{"0000000011101", 24, 1, 0, 22},
	{"0000000011110", 23, 1, 8, 2},
	{"0000000011111", 22, 1, 0, 23},
	{"00000000010000", 0, 31, 9, 1},
	{"00000000010001", 0, 30, 0, 24},
	{"00000000010010", 0, 29, 9, 2},
	{"00000000010011", 0, 28, 0, 25},
	{"00000000010100", 0, 27, 0, 26},
	{"00000000010101", 0, 26, 10, 1},
	{"00000000010110", 0, 25, 0, 27},
	{"00000000010111", 0, 24, 10, 2},
	{"00000000011000", 0, 23, 0, 28},
	{"00000000011001", 0, 22, 11, 1},
	{"00000000011010", 0, 21, 0, 29},
	{"00000000011011", 0, 20, 11, 2},
	{"00000000011100", 0, 19, 0, 30},
	{"00000000011101", 0, 18, 0, 31},
	{"00000000011110", 0, 17, 12, 1},
	{"00000000011111", 0, 16, 0, 32},
	{"000000000010000", 0, 40, 12, 2},
	{"000000000010001", 0, 39, 0, 33},
	{"000000000010010", 0, 38, 13, 1},
	{"000000000010011", 0, 37, 0, 34},
	{"000000000010100", 0, 36, 13, 2},
	{"000000000010101", 0, 35, 0, 35},
	{"000000000010110", 0, 34, 0, 36},
	{"000000000010111", 0, 33, 14, 1},
	{"000000000011000", 0, 32, 0, 37},
	{"000000000011001", 1, 14, 14, 2},
	{"000000000011010", 1, 13, 0, 38},
	{"000000000011011", 1, 12, 15, 1},
	{"000000000011100", 1, 11, 0, 39},
	{"000000000011101", 1, 10, 15, 2},
	{"000000000011110", 1, 9, 0, 40},
	{"000000000011111", 1, 8, 16, 1},
	{"0000000000010000", 1, 18, 16, 2},
	{"0000000000010001", 1, 17, 17, 1},
	{"0000000000010010", 1, 16, 18, 1},
	{"0000000000010011", 1, 15, 19, 1},
	{"0000000000010100", 6, 3, 20, 1},
	{"0000000000010101", 16, 2, 21, 1},
	{"0000000000010110", 15, 2, 22, 1},
	{"0000000000010111", 14, 2, 23, 1},
	{"0000000000011000", 13, 2, 24, 1},
	{"0000000000011001", 12, 2, 25, 1},
	{"0000000000011010", 11, 2, 26, 1},
	{"0000000000011011", 31, 1, 27, 1},
	{"0000000000011100", 30, 1, 28, 1},
	{"0000000000011101", 29, 1, 29, 1},
	{"0000000000011110", 28, 1, 30, 1},
	{"0000000000011111", 27, 1, 31, 1},
}
