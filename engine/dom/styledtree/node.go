package styledtree

/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"strings"

	"github.com/npillmayer/xtl/engine/dom/style"
	"golang.org/x/net/html"
)

// Node is a style node, the building block of the styled tree.
//
// A styled tree mirrors the element and text nodes of an HTML document.
// Nodes own their children; there are no parent pointers. Clients walking
// the tree pass context (e.g. computed styles of ancestors) downwards.
type Node struct {
	htmlNode       *html.Node
	computedStyles *style.PropertyMap
	children       []*Node
	path           string
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
// path is the element path of the node, like "html/body/div[2]/p".
func NewNodeForHTMLNode(h *html.Node, path string) *Node {
	return &Node{htmlNode: h, path: path}
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *Node) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Styles returns the computed styles of a node. Text nodes share the styles
// of their parent element.
func (sn *Node) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *Node) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// AddChild appends a child node.
func (sn *Node) AddChild(ch *Node) {
	sn.children = append(sn.children, ch)
}

// Children returns the child nodes.
func (sn *Node) Children() []*Node {
	return sn.children
}

// Path returns the element path of the node.
func (sn *Node) Path() string {
	return sn.path
}

// IsText is true for text nodes.
func (sn *Node) IsText() bool {
	return sn.htmlNode != nil && sn.htmlNode.Type == html.TextNode
}

// Text returns the content of a text node, or "".
func (sn *Node) Text() string {
	if sn.IsText() {
		return sn.htmlNode.Data
	}
	return ""
}

// Tag returns the lowercase element name, or "" for non-element nodes.
func (sn *Node) Tag() string {
	if sn.htmlNode == nil || sn.htmlNode.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(sn.htmlNode.Data)
}

// Attr returns the value of an attribute of an element node.
func (sn *Node) Attr(key string) (string, bool) {
	if sn.htmlNode == nil {
		return "", false
	}
	for _, a := range sn.htmlNode.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Walk calls f for sn and all its descendants in document order. If f
// returns false, the children of a node are skipped.
func (sn *Node) Walk(f func(n *Node, depth int) bool) {
	sn.walk(f, 0)
}

func (sn *Node) walk(f func(*Node, int) bool, depth int) {
	if !f(sn, depth) {
		return
	}
	for _, ch := range sn.children {
		ch.walk(f, depth+1)
	}
}

// Find returns the first node in document order with a given element path.
func (sn *Node) Find(path string) *Node {
	var found *Node
	sn.Walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.path == path && !n.IsText() {
			found = n
			return false
		}
		return true
	})
	return found
}

// String returns a short description, mainly for debugging.
func (sn *Node) String() string {
	if sn.IsText() {
		t := sn.Text()
		if len(t) > 20 {
			t = t[:20] + "…"
		}
		return "\"" + t + "\""
	}
	return "<" + sn.Tag() + ">"
}
