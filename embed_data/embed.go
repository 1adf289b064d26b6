package embed_data

import _ "embed"

//go:embed queries/go_queries.json
var GoQuery []byte

//go:embed queries/javascript_queries.json
var JavascriptQuery []byte

//go:embed queries/typescript_queries.json
var TypescriptQuery []byte

//go:embed queries/python_queries.json
var PythonQuery []byte

//go:embed queries/java_queries.json
var JavaQuery []byte

//go:embed queries/csharp_queries.json
var CSharpQuery []byte
