// Package chart draws scatter plots for lab results.
//
// The Renderer interface is the collaborator boundary: the lab hands over a
// Scatter and does not care how it is drawn. TextRenderer draws on a
// character grid so the plot works in any terminal and in CI logs.
package chart
