package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/cache"
	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/repository"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// singleflight collapses concurrent cache misses for the same user
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cart cache get failed", "user_id", userID, "error", err)
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			// a missing cart is just an empty cart
			return &domain.Cart{
				UserID:    userID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				slog.Warn("cart cache set failed", "user_id", userID, "error", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AdjustQuantity moves the stored quantity for a product by delta, clamped
// into [0, MaxItemQuantity]. Dropping to zero removes the item.
func (s *CartService) AdjustQuantity(ctx context.Context, userID string, productID int64, delta int) error {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	current := cart.Quantity(productID)
	next := domain.ClampQuantity(current + delta)
	if next == current {
		return nil // clamped to a no-op
	}

	if err := s.repo.SetItemQuantity(ctx, userID, productID, next); err != nil {
		slog.Error("cart set quantity failed", "user_id", userID, "product_id", productID, "error", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// SetQuantity stores an absolute quantity, clamped into the allowed range.
// Zero or negative removes the item.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) error {
	if err := s.repo.SetItemQuantity(ctx, userID, productID, domain.ClampQuantity(quantity)); err != nil {
		slog.Error("cart set quantity failed", "user_id", userID, "product_id", productID, "error", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// RemoveItem drops a product from the cart. Removing something that is not
// there is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int64) error {
	err := s.repo.RemoveItem(ctx, userID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) && !errors.Is(err, repository.ErrItemNotFound) {
		slog.Error("cart remove item failed", "user_id", userID, "product_id", productID, "error", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// ClearCart empties the user's cart mirror. Safe to retry: a missing cart
// clears to the same result.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.repo.DeleteCart(ctx, userID); err != nil {
		slog.Error("cart clear failed", "user_id", userID, "error", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		slog.Warn("cart cache invalidate failed", "user_id", userID, "error", err)
	}
}
