// Package wvadmin embeds the Weaviate admin workflows in a Go program:
// collection configuration editing, single-object property editing and
// tenant management, talking to the cluster over its REST API.
//
//	client, _ := wvadmin.New(ctx,
//	    wvadmin.WithEndpoint("http://localhost:8080", os.Getenv("WEAVIATE_API_KEY")),
//	)
//	defer client.Close()
//
//	rows, _ := client.Configs().Get(ctx, "Article")
//	_, _ = client.Configs().Update(ctx, "Article", wvadmin.Edits{"bm25_b": 0.8}, true)
//
// Object edits run inside a session that caches the collection's property
// types between calls:
//
//	objs := client.Objects("")
//	form, _ := objs.Load(ctx, "Article", id, "")
//	form, _ = objs.Save(ctx, "Article", id, "", map[string]any{"wordCount": "12"})
package wvadmin
