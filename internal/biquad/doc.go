// Package biquad designs and runs second-order IIR filter sections.
//
// Coefficients follow the RBJ audio EQ cookbook. A [Section] runs the
// Direct Form II Transposed recurrence; a [Cascade] chains identical
// sections to steepen band edges. [Band] describes the band-pass bands the
// tone-shaping stages are built from.
//
// Stereo is handled by callers as two independent mono passes; nothing in
// this package mixes channels.
package biquad
