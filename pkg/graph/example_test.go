package graph_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/obst"
)

func ExampleWriteDocument() {
	res := obst.Build([]obst.Entry{{Key: "x", Frequency: 5}})

	var buf bytes.Buffer
	if err := graph.WriteDocument(res, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Print(buf.String())
	// Output:
	// {
	//   "keys": [
	//     "x"
	//   ],
	//   "frequencies": [
	//     5
	//   ],
	//   "cost": [
	//     [
	//       5
	//     ]
	//   ],
	//   "root": [
	//     [
	//       0
	//     ]
	//   ],
	//   "tree": {
	//     "key": "x",
	//     "frequency": 5,
	//     "index": 0
	//   },
	//   "total_cost": 5
	// }
}

func ExampleReadDocument() {
	data := `{
		"keys": ["A", "B"],
		"frequencies": [1, 2],
		"cost": [[1, 4], [null, 2]],
		"root": [[0, 1], [null, 1]],
		"total_cost": 4
	}`

	res, err := graph.ReadDocument(bytes.NewReader([]byte(data)))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("root:", res.Tree.Key)
	fmt.Println("left:", res.Tree.Left.Key)
	fmt.Println("total:", res.TotalCost)
	// Output:
	// root: B
	// left: A
	// total: 4
}

func ExampleWriteLayoutFile() {
	dir, _ := os.MkdirTemp("", "obst-example")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "layout.json")

	l := graph.Layout{
		VizType: graph.VizTypeTree,
		Width:   1000,
		Height:  500,
		Nodes: []graph.Node{
			{ID: "k1", Label: "B", Frequency: 2, Index: 1, X: 500, Y: 50},
			{ID: "k0", Label: "A", Frequency: 1, Index: 0, Depth: 1, X: 300, Y: 130},
		},
		Edges: []graph.Edge{{From: "k1", To: "k0", Side: graph.SideLeft}},
	}
	if err := graph.WriteLayoutFile(l, path); err != nil {
		fmt.Println("Error:", err)
		return
	}

	back, err := graph.ReadLayoutFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("viz:", back.VizType)
	fmt.Println("nodes:", len(back.Nodes), "edges:", len(back.Edges))
	// Output:
	// viz: tree
	// nodes: 2 edges: 1
}
