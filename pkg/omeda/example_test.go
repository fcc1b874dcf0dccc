package omeda_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/parameter1/omeda-go/pkg/cache"
	"github.com/parameter1/omeda-go/pkg/omeda"
)

func Example() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"Demographics":[{"Id":1,"Description":"Job Function","DemographicType":1,"DemographicValues":[{"Id":7,"Description":"Engineer"}]}]}`)
	}))
	defer srv.Close()

	client, err := omeda.New(omeda.Config{
		AppID:   "app-id",
		Brand:   "ACME",
		BaseURL: srv.URL,
		Cache:   cache.NewMemory(),
	})
	if err != nil {
		panic(err)
	}

	demographics, err := client.Brand().Demographics(context.Background())
	if err != nil {
		panic(err)
	}
	for _, d := range demographics {
		fmt.Println(d.Description())
		for _, v := range d.Values() {
			fmt.Println(" -", v.Description())
		}
	}
	// Output:
	// Job Function
	//  - Engineer
}

func ExampleClient_Get_notFound() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"Errors":[{"Error":"Customer 5 is valid but not active."}]}`)
	}))
	defer srv.Close()

	client, _ := omeda.New(omeda.Config{AppID: "app-id", Brand: "ACME", BaseURL: srv.URL})

	// Suppressing 404s does not hide inactive records.
	_, err := client.Get(context.Background(), omeda.GetParams{
		Endpoint:        "customer/5/*",
		ErrorOnNotFound: omeda.Bool(false),
	})
	fmt.Println(errors.Is(err, omeda.ErrNotActive))
	// Output:
	// true
}
