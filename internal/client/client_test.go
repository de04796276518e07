package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
)

func TestClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client Suite")
}

type testNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type graphQLBody struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
	Query         string         `json:"query"`
}

func connectedClient(serverURL string, opts ...client.Option) *client.Client {
	c := client.New(serverURL, "test-id", "test-secret", opts...)
	Expect(c.Connect(context.Background())).To(Succeed())
	return c
}

func tokenAndGraphQL(graphql http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/client_token" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
			return
		}
		graphql(w, r)
	}
}

var _ = Describe("session", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("exchanges credentials for a token", func() {
		var received map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/api/client_token"))
			_ = json.NewDecoder(r.Body).Decode(&received)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
		}))
		defer server.Close()

		c := client.New(server.URL, "my-client", "my-secret")
		Expect(c.Connect(ctx)).To(Succeed())
		Expect(received["client_id"]).To(Equal("my-client"))
		Expect(received["client_secret"]).To(Equal("my-secret"))
		Expect(c.EnsureConnected()).To(Succeed())
	})

	It("classifies rejected credentials as an auth error", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := client.New(server.URL, "bad", "bad")
		err := c.Connect(ctx)
		var authErr *client.AuthError
		Expect(errors.As(err, &authErr)).To(BeTrue())
	})

	It("fails EnsureConnected before Connect", func() {
		c := client.New("https://example.invalid", "id", "secret")
		err := c.EnsureConnected()
		var authErr *client.AuthError
		Expect(errors.As(err, &authErr)).To(BeTrue())
	})
})

var _ = Describe("Do", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("sends the operation envelope and bearer header", func() {
		var body graphQLBody
		var auth string
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/graphql"))
			auth = r.Header.Get("Authorization")
			Expect(r.Header.Get("X-Request-Id")).NotTo(BeEmpty())
			_ = json.NewDecoder(r.Body).Decode(&body)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"thing":{"id":"a1","name":"one"}}}`))
		}))
		defer server.Close()

		c := connectedClient(server.URL)

		var out testNode
		err := c.Do(ctx, "GetThing", "query GetThing { thing { id name } }", map[string]any{"first": 1}, "thing", &out)
		Expect(err).To(BeNil())
		Expect(out.ID).To(Equal("a1"))
		Expect(auth).To(Equal("Bearer test-token"))
		Expect(body.OperationName).To(Equal("GetThing"))
		Expect(body.Variables["first"]).To(BeEquivalentTo(1))
	})

	It("maps the GraphQL errors array to an API error", func() {
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Cannot query field nope"}]}`))
		}))
		defer server.Close()

		c := connectedClient(server.URL)

		var out testNode
		err := c.Do(ctx, "GetThing", "query", nil, "thing", &out)
		var apiErr *client.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.Error()).To(ContainSubstring("Cannot query field nope"))
	})

	It("marks 5xx responses as retryable transport errors", func() {
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := connectedClient(server.URL)

		var out testNode
		err := c.Do(ctx, "GetThing", "query", nil, "thing", &out)
		var transportErr *client.TransportError
		Expect(errors.As(err, &transportErr)).To(BeTrue())
		Expect(transportErr.Retryable).To(BeTrue())
		Expect(transportErr.StatusCode).To(Equal(http.StatusBadGateway))
	})

	It("classifies a mid-session 401 as an auth error", func() {
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := connectedClient(server.URL)

		var out testNode
		err := c.Do(ctx, "GetThing", "query", nil, "thing", &out)
		var authErr *client.AuthError
		Expect(errors.As(err, &authErr)).To(BeTrue())
	})
})

var _ = Describe("Paginate", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("concatenates pages in server order and carries the cursor", func() {
		requests := 0
		var afterSeen []any
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			var body graphQLBody
			_ = json.NewDecoder(r.Body).Decode(&body)
			requests++
			afterSeen = append(afterSeen, body.Variables["after"])

			w.Header().Set("Content-Type", "application/json")
			if requests == 1 {
				_, _ = w.Write([]byte(`{"data":{"snappableConnection":{
					"edges":[{"node":{"id":"a"}},{"node":{"id":"b"}},{"node":{"id":"c"}}],
					"pageInfo":{"endCursor":"cursor-1","hasNextPage":true}}}}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"snappableConnection":{
				"edges":[{"node":{"id":"d"}}],
				"pageInfo":{"endCursor":"cursor-2","hasNextPage":false}}}}`))
		}))
		defer server.Close()

		c := connectedClient(server.URL, client.WithPageSize(3))

		nodes, err := client.Paginate[testNode](ctx, c, client.QuerySpec{
			OperationName: "ObjectList",
			Query:         "query ObjectList($first: Int!, $after: String) { ... }",
			RootField:     "snappableConnection",
		})
		Expect(err).To(BeNil())
		Expect(nodes).To(HaveLen(4))
		Expect(nodes[0].ID).To(Equal("a"))
		Expect(nodes[3].ID).To(Equal("d"))
		Expect(requests).To(Equal(2))
		Expect(afterSeen[0]).To(BeNil())
		Expect(afterSeen[1]).To(Equal("cursor-1"))
	})

	It("decodes connections that use a bare nodes array", func() {
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"slaDomains":{
				"nodes":[{"id":"sla-1","name":"Gold"},{"id":"sla-2","name":"Bronze"}],
				"pageInfo":{"endCursor":"","hasNextPage":false}}}}`))
		}))
		defer server.Close()

		c := connectedClient(server.URL)

		nodes, err := client.Paginate[testNode](ctx, c, client.QuerySpec{
			OperationName: "SLAList",
			Query:         "query SLAList { ... }",
			RootField:     "slaDomains",
		})
		Expect(err).To(BeNil())
		Expect(nodes).To(HaveLen(2))
		Expect(nodes[1].Name).To(Equal("Bronze"))
	})

	It("does not mutate the caller's variables map", func() {
		server := httptest.NewServer(tokenAndGraphQL(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"conn":{"edges":[],"pageInfo":{"endCursor":"x","hasNextPage":false}}}}`))
		}))
		defer server.Close()

		c := connectedClient(server.URL)

		vars := map[string]any{"filter": "all"}
		_, err := client.Paginate[testNode](ctx, c, client.QuerySpec{
			OperationName: "Conn",
			Query:         "query",
			Variables:     vars,
			RootField:     "conn",
		})
		Expect(err).To(BeNil())
		Expect(vars).NotTo(HaveKey("after"))
		Expect(vars).NotTo(HaveKey("first"))
	})
})
