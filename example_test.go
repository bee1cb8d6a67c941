package srihtml_test

import (
	"fmt"

	"github.com/go-sri/srihtml"
)

func Example() {
	doc := `<head>
<link rel="stylesheet" href="app.css" integrity="sha384-old">
<script src="app.js" integrity="sha384-old"></script>
</head>`

	p := srihtml.New()
	if err := p.Feed(doc, true); err != nil {
		panic(err)
	}
	for _, e := range p.SRITags() {
		e.SetAttr("integrity", "sha384-oqVuAfXRKap7fdgcCY5uykM6+R9GqQ8K/uxy9rx7HNQlGYl1kPzQho1wx4JwY8wC")
	}
	out, err := p.Stringify()
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// <head>
	// <link rel="stylesheet" href="app.css" integrity="sha384-oqVuAfXRKap7fdgcCY5uykM6+R9GqQ8K/uxy9rx7HNQlGYl1kPzQho1wx4JwY8wC">
	// <script src="app.js" integrity="sha384-oqVuAfXRKap7fdgcCY5uykM6+R9GqQ8K/uxy9rx7HNQlGYl1kPzQho1wx4JwY8wC"></script>
	// </head>
}

func ExampleParser_Feed_chunked() {
	p := srihtml.New()
	for _, chunk := range []string{"<div cla", `ss="a">hi`, "</div>"} {
		if err := p.Feed(chunk, false); err != nil {
			panic(err)
		}
	}
	out, _ := p.Stringify()
	fmt.Println(out)
	// Output:
	// <div class="a">hi</div>
}
