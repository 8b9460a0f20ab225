// Package render draws analysis results: SVG figures with gonum/plot,
// interactive HTML charts with go-echarts and terminal charts with
// asciigraph and a braille canvas.
//
// Every renderer takes its [Palette] explicitly.
package render
