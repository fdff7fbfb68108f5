package httpapi

import (
	"fmt"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"net/http"
	"strconv"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, &domain.ValidationError{Field: "page", Reason: "must be an integer"})
			return
		}
		page = p
	}

	result, err := catalog.ListPage(r.Context(), s.catalog, page, catalog.DefaultPageSize)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("catalog.ListPage: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("catalog.GetProduct: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("catalog.SearchProducts: %w", err))
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	cart := s.carts.Load(r.Context())

	summary, err := s.carts.Summary(r.Context(), cart)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.Summary: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, mapSummaryToDTO(summary))
}

// addItem mirrors the add-to-cart modal: the chosen quantity is capped by the product's stock,
// and an out-of-stock product cannot be added.
func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ProductID <= 0 {
		s.writeError(w, r, &domain.ValidationError{Field: "productId", Reason: "must be positive"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = int(*req.Quantity)
	}

	product, err := s.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("catalog.GetProduct: %w", err))
		return
	}
	if product.Stock <= 0 {
		s.writeError(w, r, fmt.Errorf("product %d: %w", product.ID, domain.ErrOutOfStock))
		return
	}
	quantity = min(quantity, product.Stock)

	cart, err := s.carts.LoadForUpdate(r.Context())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.LoadForUpdate: %w", err))
		return
	}

	cart, err = s.carts.AddOrIncrement(r.Context(), cart, product.ID, quantity, product.Snapshot())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.AddOrIncrement: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, mapCartToDTO(cart))
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req setQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Quantity == nil {
		s.writeError(w, r, &domain.ValidationError{Field: "quantity", Reason: "is required"})
		return
	}

	cart, err := s.carts.LoadForUpdate(r.Context())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.LoadForUpdate: %w", err))
		return
	}
	if _, ok := cart.Line(id); !ok {
		s.writeError(w, r, fmt.Errorf("cart line %d: %w", id, domain.ErrNotFound))
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("catalog.GetProduct: %w", err))
		return
	}

	// An out-of-stock line keeps its minimum quantity rather than becoming unbounded.
	cart, err = s.carts.SetQuantity(r.Context(), cart, id, *req.Quantity, max(product.Stock, 1))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.SetQuantity: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, mapCartToDTO(cart))
}

// increaseItem is the cart list "+" button, which has no stock information.
func (s *Server) increaseItem(w http.ResponseWriter, r *http.Request) {
	s.mutateLine(w, r, func(cart domain.Cart, id int64) (domain.Cart, error) {
		return s.carts.Increase(r.Context(), cart, id, 0)
	})
}

func (s *Server) decreaseItem(w http.ResponseWriter, r *http.Request) {
	s.mutateLine(w, r, func(cart domain.Cart, id int64) (domain.Cart, error) {
		return s.carts.Decrease(r.Context(), cart, id)
	})
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	s.mutateLine(w, r, func(cart domain.Cart, id int64) (domain.Cart, error) {
		return s.carts.Remove(r.Context(), cart, id)
	})
}

func (s *Server) mutateLine(w http.ResponseWriter, r *http.Request, mutate func(cart domain.Cart, id int64) (domain.Cart, error)) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cart, err := s.carts.LoadForUpdate(r.Context())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.LoadForUpdate: %w", err))
		return
	}

	cart, err = mutate(cart, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToDTO(cart))
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	cart, err := s.carts.LoadForUpdate(r.Context())
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.LoadForUpdate: %w", err))
		return
	}

	cart, err = s.carts.Checkout(r.Context(), cart)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("carts.Checkout: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, mapCartToDTO(cart))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.profile.GetUser(r.Context(), s.userID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("profile.GetUser: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.profile.UpdateUser(r.Context(), s.userID, update)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("profile.UpdateUser: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, user)
}
