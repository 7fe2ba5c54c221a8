package cssom

// defaultUserAgentSheet contains the styles every document starts with.
// It sticks to properties the layout engine supports.
const defaultUserAgentSheet = `
html, address, blockquote, body, dd, div, dl, dt, fieldset, form, h1, h2, h3, h4, h5, h6, ol, p, ul, center, hr, pre, menu { display: block; }
article, aside, footer, header, nav, section, main, figure, figcaption { display: block; }
li { display: list-item; }
head, script, style, title, meta, link, template { display: none; }
body { margin: 8px; }
h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em; font-weight: bold; }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em; font-weight: bold; }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em; font-weight: bold; }
h4 { margin-top: 1.33em; margin-bottom: 1.33em; font-weight: bold; }
h5 { font-size: 0.83em; margin-top: 1.67em; margin-bottom: 1.67em; font-weight: bold; }
h6 { font-size: 0.67em; margin-top: 2.33em; margin-bottom: 2.33em; font-weight: bold; }
p, blockquote, ul, ol, dl, figure { margin-top: 1em; margin-bottom: 1em; }
blockquote, figure { margin-left: 40px; margin-right: 40px; }
ul, ol, menu { padding-left: 40px; }
dd { margin-left: 40px; }
b, strong, th { font-weight: bold; }
i, em, cite, var, dfn, address { font-style: italic; }
u, ins { text-decoration: underline; }
s, strike, del { text-decoration: line-through; }
pre, code, kbd, samp, tt { font-family: monospace; }
pre { white-space: pre; margin-top: 1em; margin-bottom: 1em; }
a[href] { color: #0645ad; text-decoration: underline; }
hr { border: 1px solid gray; margin-top: 0.5em; margin-bottom: 0.5em; }
center { text-align: center; }
small { font-size: smaller; }
big { font-size: larger; }
[dir=rtl] { direction: rtl; }
[dir=ltr] { direction: ltr; }
`
