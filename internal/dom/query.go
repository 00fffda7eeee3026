package dom

import "golang.org/x/net/html"

// Matcher selects nodes.
type Matcher func(*html.Node) bool

// Find returns the first node under root (inclusive, depth first) that matches.
func Find(root *html.Node, match Matcher) *html.Node {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every matching node under root in document order.
func FindAll(root *html.Node, match Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// ByID finds the element with the given id attribute.
func ByID(root *html.Node, id string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		val, ok := Attr(n, "id")
		return ok && val == id
	})
}

// HasAttr matches elements carrying key=val.
func HasAttr(key, val string) Matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		got, ok := Attr(n, key)
		return ok && got == val
	}
}

// WithClass matches elements whose class list contains class.
func WithClass(class string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, class)
	}
}

// All combines matchers with logical and.
func All(matchers ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range matchers {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Closest walks from n up to and including stop, returning the first match.
// It returns nil when stop is passed without a match.
func Closest(n, stop *html.Node, match Matcher) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if match(cur) {
			return cur
		}
		if cur == stop {
			return nil
		}
	}
	return nil
}

// Contains reports whether n is ancestor or is the same node as descendant.
func Contains(n, descendant *html.Node) bool {
	for cur := descendant; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}
